package anvil

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// RegionCoord identifies one region file within a world (world chunk
// coordinates divided by 32).
type RegionCoord struct {
	X int
	Z int
}

// World is a collection of parsed regions loaded from a world save's region
// directory.
type World struct {
	regions map[RegionCoord]*Region
}

// OpenWorld loads every region file (r.<x>.<z>.mca) in the given directory.
// Regions are parsed concurrently. Files that cannot be read or whose header
// is corrupt are logged and skipped; they do not fail the world load.
func OpenWorld(root string) (*World, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	type parsed struct {
		coord  RegionCoord
		region *Region
	}

	var wg sync.WaitGroup
	results := make(chan parsed, len(entries))
	for _, entry := range entries {
		coord, ok := parseRegionName(entry.Name())
		if !ok {
			continue
		}
		wg.Add(1)
		go func(coord RegionCoord, path string) {
			defer wg.Done()
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("anvil: skipping %s: %v", path, err)
				return
			}
			region, err := ParseRegion(data)
			if err != nil {
				log.Printf("anvil: skipping %s: %v", path, err)
				return
			}
			results <- parsed{coord: coord, region: region}
		}(coord, filepath.Join(root, entry.Name()))
	}
	wg.Wait()
	close(results)

	regions := make(map[RegionCoord]*Region)
	for p := range results {
		regions[p.coord] = p.region
	}
	return &World{regions: regions}, nil
}

// parseRegionName extracts region coordinates from a "r.<x>.<z>.mca" file
// name.
func parseRegionName(name string) (RegionCoord, bool) {
	parts := strings.Split(name, ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] != "mca" {
		return RegionCoord{}, false
	}
	x, err := strconv.Atoi(parts[1])
	if err != nil {
		return RegionCoord{}, false
	}
	z, err := strconv.Atoi(parts[2])
	if err != nil {
		return RegionCoord{}, false
	}
	return RegionCoord{X: x, Z: z}, true
}

// Region returns the region at the given region coordinates, or nil if that
// file was not present in the world directory.
func (w *World) Region(x, z int) *Region {
	return w.regions[RegionCoord{X: x, Z: z}]
}

// RegionCount returns the number of loaded regions.
func (w *World) RegionCount() int {
	return len(w.regions)
}

// Chunk returns the chunk at world chunk coordinates, or nil if its region is
// not loaded or the cell is absent.
func (w *World) Chunk(x, z int) *Chunk {
	region := w.regions[RegionCoord{X: floorDiv(x, regionWidth), Z: floorDiv(z, regionWidth)}]
	if region == nil {
		return nil
	}
	return region.Chunk(mod(x, regionWidth), mod(z, regionWidth))
}

// CountChunks returns the total number of present chunks across all loaded
// regions.
func (w *World) CountChunks() int {
	total := 0
	for _, region := range w.regions {
		total += region.CountChunks()
	}
	return total
}

// floorDiv rounds towards negative infinity, unlike Go's integer division,
// so chunk -1 maps into region -1 rather than region 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func (w *World) String() string {
	return fmt.Sprintf("world with %d regions, %d chunks", w.RegionCount(), w.CountChunks())
}
