package calculator

import (
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultConfigPath = "conf/config.ini"

type Config struct {
	// 钙 / 氮分支阈值：满足全部钙缺口时带入的氮超过氮缺口的倍数
	CalciumNitrogenRatio float64
	// 钾 / 硫分支阈值：按硫缺口投加硫酸钾时带入的钾超过钾缺口的倍数
	PotassiumSulfurRatio float64

	// 离子平衡允许的最大偏差，%
	ImbalanceTolerance float64

	// 分罐默认参数
	TankCount           int
	MaxTanks            int
	ConcentrationFactor int
	TankVolume          float64 // L
	DilutedVolume       float64 // L
	Temperature         float64 // 溶解度参考温度，℃

	Addr     string
	LogLevel string
}

func DefaultConfig() Config {
	return Config{
		CalciumNitrogenRatio: 1.5,
		PotassiumSulfurRatio: 1.2,
		ImbalanceTolerance:   10,
		TankCount:            2,
		MaxTanks:             8,
		ConcentrationFactor:  100,
		TankVolume:           1000,
		DilutedVolume:        100000,
		Temperature:          20,
		Addr:                 ":9000",
		LogLevel:             "info",
	}
}

// 读取配置文件，文件不存在或格式错误时使用默认值
func LoadConfig(path string) Config {
	file, err := ini.Load(path)
	if err != nil {
		log.WithField("path", path).Warn("配置文件读取错误，使用默认配置: ", err)
		return DefaultConfig()
	}
	return loadCfg(file)
}

func loadCfg(file *ini.File) Config {
	d := DefaultConfig()
	cfg := Config{
		CalciumNitrogenRatio: file.Section("formulation").Key("calcium_nitrogen_ratio").MustFloat64(d.CalciumNitrogenRatio),
		PotassiumSulfurRatio: file.Section("formulation").Key("potassium_sulfur_ratio").MustFloat64(d.PotassiumSulfurRatio),
		ImbalanceTolerance:   file.Section("balance").Key("imbalance_tolerance").MustFloat64(d.ImbalanceTolerance),
		TankCount:            file.Section("distribution").Key("tank_count").MustInt(d.TankCount),
		MaxTanks:             file.Section("distribution").Key("max_tanks").MustInt(d.MaxTanks),
		ConcentrationFactor:  file.Section("distribution").Key("concentration_factor").MustInt(d.ConcentrationFactor),
		TankVolume:           file.Section("distribution").Key("tank_volume").MustFloat64(d.TankVolume),
		DilutedVolume:        file.Section("distribution").Key("diluted_volume").MustFloat64(d.DilutedVolume),
		Temperature:          file.Section("distribution").Key("temperature").MustFloat64(d.Temperature),
		Addr:                 file.Section("server").Key("addr").MustString(d.Addr),
		LogLevel:             file.Section("log").Key("level").MustString(d.LogLevel),
	}
	log.WithFields(log.Fields{
		"CalciumNitrogenRatio": cfg.CalciumNitrogenRatio,
		"PotassiumSulfurRatio": cfg.PotassiumSulfurRatio,
		"ImbalanceTolerance":   cfg.ImbalanceTolerance,
		"TankCount":            cfg.TankCount,
		"MaxTanks":             cfg.MaxTanks,
		"ConcentrationFactor":  cfg.ConcentrationFactor,
	}).Debug("加载配置")
	return cfg
}
