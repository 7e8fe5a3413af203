package compatibility

import (
	"hydro/catalog"
	"hydro/model"
)

type seedEntry struct {
	a, b  string
	level model.Level
}

var seed = []seedEntry{
	// 钙与磷酸盐、硫酸盐生成沉淀
	{catalog.CalciumNitrate, catalog.PotassiumPhosphate, model.Incompatible},
	{catalog.CalciumNitrate, catalog.MagnesiumSulfate, model.Incompatible},
	{catalog.CalciumNitrate, catalog.PotassiumSulfate, model.Incompatible},
	{catalog.CalciumChloride, catalog.PotassiumPhosphate, model.Incompatible},
	{catalog.CalciumChloride, catalog.MagnesiumSulfate, model.Incompatible},
	{catalog.CalciumChloride, catalog.PotassiumSulfate, model.Incompatible},
	{catalog.CalciumNitrate, catalog.PhosphoricAcid, model.Incompatible},
	{catalog.CalciumChloride, catalog.PhosphoricAcid, model.Incompatible},

	{catalog.CalciumNitrate, catalog.ZincSulfate, model.Limited},
	{catalog.CalciumNitrate, catalog.ManganeseSulfate, model.Limited},
	{catalog.CalciumNitrate, catalog.CopperSulfate, model.Limited},
	{catalog.CalciumChloride, catalog.ZincSulfate, model.Limited},
	{catalog.CalciumChloride, catalog.ManganeseSulfate, model.Limited},
	{catalog.CalciumChloride, catalog.CopperSulfate, model.Limited},
	{catalog.CalciumNitrate, catalog.SulfuricAcid, model.Limited},
	{catalog.IronChelate, catalog.PotassiumPhosphate, model.Limited},
	{catalog.IronChelate, catalog.SulfuricAcid, model.Limited},
	{catalog.IronChelate, catalog.NitricAcid, model.Limited},

	// 浓酸之间不能直接混合，需先加入水中
	{catalog.NitricAcid, catalog.PhosphoricAcid, model.WaterOnly},
	{catalog.PhosphoricAcid, catalog.SulfuricAcid, model.WaterOnly},
	{catalog.NitricAcid, catalog.SulfuricAcid, model.HeatGenerating},

	// 同离子效应降低溶解度
	{catalog.PotassiumNitrate, catalog.PotassiumSulfate, model.SolubilityLimited},
	{catalog.PotassiumChloride, catalog.PotassiumSulfate, model.SolubilityLimited},
}
