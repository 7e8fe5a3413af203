// Package recipe reads nutrient recipes: target concentrations, the source water
// analysis and the stock tank settings, stored as TOML.
package recipe

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"hydro/model"
)

type Recipe struct {
	Name         string               `toml:"name"`
	Description  string               `toml:"description,omitempty"`
	Targets      model.NutrientTarget `toml:"targets"`
	Water        model.WaterBaseline  `toml:"water"`
	Distribution Distribution         `toml:"distribution"`
}

// 未填写的字段为 0，由分罐模块替换为默认值
type Distribution struct {
	Tanks               int      `toml:"tanks"`
	ConcentrationFactor int      `toml:"concentration_factor"`
	TankVolume          float64  `toml:"tank_volume"`
	DilutedVolume       float64  `toml:"diluted_volume"`
	Acids               []string `toml:"acids"`
}

func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	md, err := toml.Decode(string(data), &r)
	if err != nil {
		return nil, fmt.Errorf("parsing recipe: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("parsing recipe: unknown keys %s", strings.Join(keys, ", "))
	}
	if r.Targets == nil {
		r.Targets = model.NutrientTarget{}
	}
	if r.Water == nil {
		r.Water = model.WaterBaseline{}
	}
	return &r, nil
}

func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func (r *Recipe) FormulateReq() model.FormulateReq {
	return model.FormulateReq{
		Targets: r.Targets,
		Water:   r.Water,
	}
}

func (r *Recipe) DistributeReq() model.DistributeReq {
	return model.DistributeReq{
		Targets:             r.Targets,
		Water:               r.Water,
		Acids:               r.Distribution.Acids,
		TankCount:           r.Distribution.Tanks,
		ConcentrationFactor: r.Distribution.ConcentrationFactor,
		TankVolume:          r.Distribution.TankVolume,
		DilutedVolume:       r.Distribution.DilutedVolume,
	}
}
