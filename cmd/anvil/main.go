package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.etcd.io/bbolt"

	"github.com/voxelio/anvil"
)

var chunksBucket = []byte("chunks")

func main() {
	app := &cli.App{
		Name:  "anvil",
		Usage: "inspect Anvil region files",
		Commands: []*cli.Command{
			{
				Name:      "inspect",
				Usage:     "print a summary of a region file",
				ArgsUsage: "<region.mca>",
				Action:    inspectRegion,
			},
			{
				Name:      "index",
				Usage:     "write per-chunk metadata of a region file to a bolt database",
				ArgsUsage: "<region.mca>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "chunks.db",
						Usage:   "database file to write",
					},
				},
				Action: indexRegion,
			},
			{
				Name:      "world",
				Usage:     "print a summary of a world's region directory",
				ArgsUsage: "<region-dir>",
				Action:    inspectWorld,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseRegionArg(c *cli.Context) (*anvil.Region, error) {
	if c.NArg() == 0 {
		return nil, fmt.Errorf("need a region file to work with")
	}
	data, err := os.ReadFile(c.Args().Get(0))
	if err != nil {
		return nil, err
	}
	return anvil.ParseRegion(data)
}

func inspectRegion(c *cli.Context) error {
	region, err := parseRegionArg(c)
	if err != nil {
		return err
	}

	fmt.Printf("%d of %d chunks present\n", region.CountChunks(), 1024)
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			chunk := region.Chunk(x, z)
			if chunk == nil {
				continue
			}
			minY, maxY := chunk.YRange()
			fmt.Printf("chunk %2d,%2d: %2d sections, y [%d,%d)\n",
				x, z, chunk.SectionCount(), minY, maxY)
		}
	}
	return nil
}

func indexRegion(c *cli.Context) error {
	region, err := parseRegionArg(c)
	if err != nil {
		return err
	}

	db, err := bbolt.Open(c.String("output"), 0600, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	indexed := 0
	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(chunksBucket)
		if err != nil {
			return err
		}
		for z := 0; z < 32; z++ {
			for x := 0; x < 32; x++ {
				chunk := region.Chunk(x, z)
				if chunk == nil {
					continue
				}
				if err := bucket.Put(chunkKey(x, z), chunkValue(chunk)); err != nil {
					return err
				}
				indexed++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("indexed %d chunks into %s\n", indexed, c.String("output"))
	return nil
}

func chunkKey(x, z int) []byte {
	return []byte(fmt.Sprintf("c.%d.%d", x, z))
}

// chunkValue encodes timestamp, yPos and section count as a fixed 10-byte
// big-endian record.
func chunkValue(chunk *anvil.Chunk) []byte {
	value := make([]byte, 10)
	binary.BigEndian.PutUint32(value, chunk.Timestamp())
	binary.BigEndian.PutUint32(value[4:], uint32(int32(chunk.YPos())))
	binary.BigEndian.PutUint16(value[8:], uint16(chunk.SectionCount()))
	return value
}

func inspectWorld(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("need a region directory to work with")
	}
	world, err := anvil.OpenWorld(c.Args().Get(0))
	if err != nil {
		return err
	}
	fmt.Println(world)
	return nil
}
