package calculator

import (
	log "github.com/sirupsen/logrus"

	"hydro/catalog"
	"hydro/model"
)

// 规则执行记录
type Step struct {
	Rule       string  `json:"rule"`
	Decision   string  `json:"decision"`
	Fertilizer string  `json:"fertilizer"`
	Element    string  `json:"element"`
	Amount     float64 `json:"amount"`    // 目标元素，mg/L
	SaltMgL    float64 `json:"salt_mg_l"` // 0 表示未投加
}

// 单次配方计算的状态，不在多次调用之间共享
type Session struct {
	cat     *catalog.Catalog
	Deficit model.Deficit
	Doses   []model.FertilizerDose
	Trace   []Step
}

func newSession(cat *catalog.Catalog, deficit model.Deficit) *Session {
	return &Session{
		cat:     cat,
		Deficit: deficit,
	}
}

// 按 element 投加 amount (mg/L) 时，该肥料带入的 other 元素浓度
func (s *Session) Yield(fertilizer, element string, amount float64, other string) (float64, error) {
	f, err := s.cat.Fertilizer(fertilizer)
	if err != nil {
		return 0, err
	}
	salt, err := SaltForElement(f, element, amount)
	if err != nil {
		return 0, err
	}
	return ElementFromSalt(f, other, salt), nil
}

// 投加肥料使 element 增加 amount (mg/L)
// element 的缺口按 amount 扣减，reduces 中的元素按实际带入量扣减
func (s *Session) Dose(rule, decision, fertilizer, element string, amount float64, reduces ...string) error {
	f, err := s.cat.Fertilizer(fertilizer)
	if err != nil {
		return err
	}
	salt, err := SaltForElement(f, element, amount)
	if err != nil {
		return err
	}
	s.Trace = append(s.Trace, Step{
		Rule:       rule,
		Decision:   decision,
		Fertilizer: fertilizer,
		Element:    element,
		Amount:     amount,
		SaltMgL:    salt,
	})
	if salt <= 0 {
		return nil
	}

	dose := NewDose(f, salt)
	s.Doses = append(s.Doses, dose)
	s.Deficit.Reduce(element, amount)
	for _, el := range reduces {
		s.Deficit.Reduce(el, dose.Contributions[el])
	}

	log.WithFields(log.Fields{
		"rule":       rule,
		"decision":   decision,
		"fertilizer": fertilizer,
		"element":    element,
		"amount":     amount,
		"salt":       salt,
	}).Debug("投加肥料")
	return nil
}
