package track

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/lixenwraith/vi-racer/vmath"
)

// rectFile is the on-disk form of a rectangle
type rectFile struct {
	MinX float64 `mapstructure:"minX"`
	MinY float64 `mapstructure:"minY"`
	MaxX float64 `mapstructure:"maxX"`
	MaxY float64 `mapstructure:"maxY"`
}

func (r rectFile) rect() Rect { return NewRect(r.MinX, r.MinY, r.MaxX, r.MaxY) }

type spawnFile struct {
	X       float64 `mapstructure:"x"`
	Y       float64 `mapstructure:"y"`
	Heading float64 `mapstructure:"heading"`
}

func (s spawnFile) spawn() Spawn {
	return Spawn{Position: vmath.Vec2{s.X, s.Y}, Heading: s.Heading}
}

type pointFile struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// trackFile mirrors the JSON track format
type trackFile struct {
	Name        string      `mapstructure:"name"`
	Bounds      rectFile    `mapstructure:"bounds"`
	Outer       rectFile    `mapstructure:"outer"`
	Inner       rectFile    `mapstructure:"inner"`
	Checkpoint  rectFile    `mapstructure:"checkpoint"`
	Waypoints   []pointFile `mapstructure:"waypoints"`
	PlayerSpawn spawnFile   `mapstructure:"playerSpawn"`
	AISpawns    []spawnFile `mapstructure:"aiSpawns"`
	ForwardAxis pointFile   `mapstructure:"forwardAxis"`
}

// Load reads a JSON track file
// Missing forwardAxis defaults to +X
func Load(path string) (*Track, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("name", "custom")
	v.SetDefault("forwardAxis.x", 1.0)
	v.SetDefault("forwardAxis.y", 0.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading track file: %w", err)
	}

	var f trackFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("error decoding track file: %w", err)
	}

	waypoints := make([]vmath.Vec2, 0, len(f.Waypoints))
	for _, p := range f.Waypoints {
		waypoints = append(waypoints, vmath.Vec2{p.X, p.Y})
	}
	ai := make([]Spawn, 0, len(f.AISpawns))
	for _, s := range f.AISpawns {
		ai = append(ai, s.spawn())
	}

	t, err := New(
		f.Name,
		f.Bounds.rect(),
		f.Outer.rect(),
		f.Inner.rect(),
		f.Checkpoint.rect(),
		waypoints,
		f.PlayerSpawn.spawn(),
		ai,
		vmath.Vec2{f.ForwardAxis.X, f.ForwardAxis.Y},
	)
	if err != nil {
		return nil, fmt.Errorf("track %q: %w", path, err)
	}
	return t, nil
}
