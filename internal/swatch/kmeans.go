package swatch

import (
	"image"
	"math"
	"math/rand"

	"github.com/jmylchreest/legible/internal/colour"
)

// kmeansSeed keeps clustering reproducible for identical regions.
const kmeansSeed = 1

// KMeansExtractor clusters sampled pixels in RGB space. The largest cluster
// is the background.
type KMeansExtractor struct {
	opts          Options
	maxIterations int
	convergence   float64
	maxSamples    int
}

// NewKMeansExtractor creates a KMeansExtractor with default settings.
func NewKMeansExtractor(opts Options) *KMeansExtractor {
	return &KMeansExtractor{
		opts:          opts,
		maxIterations: 20,
		convergence:   1.0,
		maxSamples:    4000,
	}
}

// Extract implements Extractor.
func (e *KMeansExtractor) Extract(img image.Image) (*ContrastSwatch, error) {
	pixels := samplePixels(img, e.maxSamples)
	if len(pixels) == 0 {
		return nil, ErrEmptyImage
	}

	k := e.opts.MaxForegrounds + 1

	// Few distinct colours need no clustering.
	unique := make(map[colour.Color]int)
	for _, p := range pixels {
		unique[p]++
	}
	var ranked []weighted
	if len(unique) <= k {
		for c, n := range unique {
			ranked = append(ranked, weighted{colour: c, share: float64(n) / float64(len(pixels))})
		}
	} else {
		rng := rand.New(rand.NewSource(kmeansSeed))
		centroids, weights := e.kmeans(rng, pixels, k)
		for i, c := range centroids {
			if weights[i] == 0 {
				continue
			}
			ranked = append(ranked, weighted{colour: c.colour(), share: weights[i]})
		}
		ranked = mergeShares(ranked)
	}
	sortByShare(ranked)

	background := ranked[0].colour
	others := make([]weighted, 0, len(ranked)-1)
	for _, w := range ranked[1:] {
		if w.colour != background {
			others = append(others, w)
		}
	}
	if len(others) == 0 {
		return NewContrastSwatch(background, []colour.Color{background})
	}
	return NewContrastSwatch(background, selectCandidates(background, others, e.opts))
}

// mergeShares combines entries whose colours are equal, summing their shares.
// Distinct centroids can round to the same packed colour.
func mergeShares(ws []weighted) []weighted {
	index := make(map[colour.Color]int, len(ws))
	out := ws[:0]
	for _, w := range ws {
		if i, ok := index[w.colour]; ok {
			out[i].share += w.share
			continue
		}
		index[w.colour] = len(out)
		out = append(out, w)
	}
	return out
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) colour() colour.Color {
	return colour.RGB(uint8(math.Round(p.R)), uint8(math.Round(p.G)), uint8(math.Round(p.B)))
}

// samplePixels samples opaque pixel colours, falling back to grid sampling
// for regions larger than maxSamples.
func samplePixels(img image.Image, maxSamples int) []colour.Color {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()
	if totalPixels <= 0 {
		return nil
	}

	step := 1
	if totalPixels > maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)
	}

	pixels := make([]colour.Color, 0, min(totalPixels, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, colour.FromColor(img.At(x, y)).Opaque())
			if len(pixels) >= maxSamples {
				return pixels
			}
		}
	}
	return pixels
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(rng *rand.Rand, pixels []colour.Color, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		points[i] = point3D{R: float64(c.R()), G: float64(c.G()), B: float64(c.B())}
	}

	centroids := initializeCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && changed == 0 {
			break
		}

		newCentroids := recalculateCentroids(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	weights := make([]float64, k)
	for _, point := range points {
		weights[findNearestCentroid(point, centroids)]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}

	return centroids, weights
}

// initializeCentroids seeds centroids with the k-means++ scheme.
func initializeCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = min(minDist, point.distance(centroid))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			// Empty cluster, reseed from a random point.
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
