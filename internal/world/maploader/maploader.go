package maploader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"chosenoffset.com/ledgewalk/internal/world/tilemap"
)

// Tiled stores flip/rotation flags in the top bits of each gid
const gidFlagMask = 0x1FFFFFFF

// ErrLayerNotFound is returned when the map has no layer with the requested name
var ErrLayerNotFound = errors.New("maploader: layer not found")

// PropertyData is a Tiled custom property
type PropertyData struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// ObjectData is a single object from an object layer (zones, spawn points)
type ObjectData struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`  // Older Tiled exports
	Class      string         `json:"class"` // Tiled 1.9+
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Properties []PropertyData `json:"properties"`
}

// TypeTag returns the object's type string, whichever field Tiled wrote it to
func (o ObjectData) TypeTag() string {
	if o.Type != "" {
		return o.Type
	}
	return o.Class
}

// LayerData is a tile layer or object group
type LayerData struct {
	Name    string       `json:"name"`
	Type    string       `json:"type"` // "tilelayer" or "objectgroup"
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Visible bool         `json:"visible"`
	Data    []int        `json:"data"`
	Objects []ObjectData `json:"objects"`
}

// TileData carries the per-tile properties of a tileset
type TileData struct {
	ID         int            `json:"id"`
	Properties []PropertyData `json:"properties"`
}

// TilesetData is an embedded tileset
type TilesetData struct {
	FirstGID  int        `json:"firstgid"`
	Name      string     `json:"name"`
	TileCount int        `json:"tilecount"`
	Tiles     []TileData `json:"tiles"`
}

// MapData represents a Tiled JSON map export
type MapData struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	TileWidth  int           `json:"tilewidth"`
	TileHeight int           `json:"tileheight"`
	Layers     []LayerData   `json:"layers"`
	Tilesets   []TilesetData `json:"tilesets"`
}

// Map represents a parsed, validated map
type Map struct {
	Data      *MapData
	Source    string
	tileProps map[int]map[string]interface{} // Keyed by gid
}

// LoadMap loads a map from a Tiled JSON file
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}
	return Parse(data, mapPath)
}

// Parse decodes and validates map JSON. source names the data in errors.
func Parse(data []byte, source string) (*Map, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", source, err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", source, err)
	}

	return &Map{
		Data:      &mapData,
		Source:    source,
		tileProps: indexTileProperties(mapData.Tilesets),
	}, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if data.TileWidth <= 0 || data.TileHeight <= 0 {
		return fmt.Errorf("invalid tile size: %dx%d", data.TileWidth, data.TileHeight)
	}

	seen := make(map[string]bool)
	for _, layer := range data.Layers {
		if layer.Name == "" {
			return fmt.Errorf("layer without a name")
		}
		if seen[layer.Name] {
			return fmt.Errorf("duplicate layer name %q", layer.Name)
		}
		seen[layer.Name] = true

		if layer.Type != "tilelayer" {
			continue
		}
		if layer.Width != data.Width || layer.Height != data.Height {
			return fmt.Errorf("layer %q size %dx%d does not match map %dx%d",
				layer.Name, layer.Width, layer.Height, data.Width, data.Height)
		}
		if len(layer.Data) != layer.Width*layer.Height {
			return fmt.Errorf("layer %q data length mismatch: expected %d, got %d",
				layer.Name, layer.Width*layer.Height, len(layer.Data))
		}
	}

	return nil
}

// indexTileProperties flattens tileset properties into a gid lookup
func indexTileProperties(tilesets []TilesetData) map[int]map[string]interface{} {
	props := make(map[int]map[string]interface{})
	for _, ts := range tilesets {
		for _, tile := range ts.Tiles {
			if len(tile.Properties) == 0 {
				continue
			}
			m := make(map[string]interface{}, len(tile.Properties))
			for _, p := range tile.Properties {
				m[p.Name] = p.Value
			}
			props[ts.FirstGID+tile.ID] = m
		}
	}
	return props
}

// findLayer returns the named layer of the given type
func (m *Map) findLayer(name, layerType string) (*LayerData, error) {
	for i := range m.Data.Layers {
		l := &m.Data.Layers[i]
		if l.Name == name && l.Type == layerType {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%s %q in %s: %w", layerType, name, m.Source, ErrLayerNotFound)
}

// BuildLayer creates a tile layer from the named tilelayer. Gid 0 becomes an
// empty cell; any other gid is stored as the tile index.
func (m *Map) BuildLayer(name string) (*tilemap.Layer, error) {
	data, err := m.findLayer(name, "tilelayer")
	if err != nil {
		return nil, err
	}

	layer, err := tilemap.NewLayer(name, data.Width, data.Height,
		float64(m.Data.TileWidth), float64(m.Data.TileHeight))
	if err != nil {
		return nil, err
	}

	for i, raw := range data.Data {
		gid := raw & gidFlagMask
		if gid == 0 {
			continue
		}
		x, y := i%data.Width, i/data.Width
		if err := layer.PutTile(x, y, gid, m.tileProps[gid]); err != nil {
			return nil, err
		}
	}

	return layer, nil
}

// Objects returns the objects of the named object layer in file order
func (m *Map) Objects(name string) ([]ObjectData, error) {
	data, err := m.findLayer(name, "objectgroup")
	if err != nil {
		return nil, err
	}
	return data.Objects, nil
}

// FindObject returns the first object with the given name in an object layer
func (m *Map) FindObject(layerName, objectName string) (ObjectData, bool) {
	objects, err := m.Objects(layerName)
	if err != nil {
		return ObjectData{}, false
	}
	for _, obj := range objects {
		if obj.Name == objectName {
			return obj, true
		}
	}
	return ObjectData{}, false
}

// LayerNames returns all layer names sorted alphabetically
func (m *Map) LayerNames() []string {
	names := make([]string, 0, len(m.Data.Layers))
	for _, l := range m.Data.Layers {
		names = append(names, l.Name)
	}
	sort.Strings(names)
	return names
}

// PixelSize returns the map extent in world units
func (m *Map) PixelSize() (float64, float64) {
	return float64(m.Data.Width * m.Data.TileWidth), float64(m.Data.Height * m.Data.TileHeight)
}
