package server

import (
	"hydro/calculator"
	"hydro/catalog"
	"hydro/compatibility"
	"hydro/distributor"
	"hydro/model"
)

// 配方计算 + 分罐，供 websocket 和命令行共用
type Service struct {
	calc calculator.Calculator
	dist *distributor.Distributor
}

func NewService(calc calculator.Calculator, dist *distributor.Distributor) *Service {
	return &Service{
		calc: calc,
		dist: dist,
	}
}

// 按配置组装默认的计算引擎和分罐器
func NewServiceFromConfig(cfg calculator.Config) (*Service, error) {
	cat := catalog.New()
	engine, err := calculator.NewEngine(cat, cfg)
	if err != nil {
		return nil, err
	}
	dist := distributor.New(cat, compatibility.New(cat), distributor.Options{
		TankCount:           cfg.TankCount,
		MaxTanks:            cfg.MaxTanks,
		ConcentrationFactor: cfg.ConcentrationFactor,
		TankVolume:          cfg.TankVolume,
		DilutedVolume:       cfg.DilutedVolume,
		Temperature:         cfg.Temperature,
	})
	return NewService(engine, dist), nil
}

type FormulateResp struct {
	Formulation *calculator.Formulation `json:"formulation"`
	Balance     model.IonBalance        `json:"balance"`
}

type DistributeResp struct {
	FormulateResp
	Report *model.Report `json:"report"`
}

func (s *Service) Formulate(req model.FormulateReq) (*FormulateResp, error) {
	f, err := s.calc.Solve(req.Targets, req.Water)
	if err != nil {
		return nil, err
	}
	b, err := s.calc.Balance(f.Doses, req.Water)
	if err != nil {
		return nil, err
	}
	return &FormulateResp{
		Formulation: f,
		Balance:     b,
	}, nil
}

func (s *Service) Distribute(req model.DistributeReq) (*DistributeResp, error) {
	resp, err := s.Formulate(model.FormulateReq{Targets: req.Targets, Water: req.Water})
	if err != nil {
		return nil, err
	}
	report, err := s.dist.Plan(resp.Formulation.Doses, req.Acids, req.TankCount, req.ConcentrationFactor, req.TankVolume, req.DilutedVolume)
	if err != nil {
		return nil, err
	}
	return &DistributeResp{
		FormulateResp: *resp,
		Report:        report,
	}, nil
}
