package distributor

import (
	"fmt"

	"hydro/catalog"
	"hydro/model"
)

// 分罐策略：给出每种肥料所在罐的下标，以及酸所在罐的下标
type strategy struct {
	tanks    int
	assign   func(f *model.Fertilizer) int
	acidTank int
}

func strategyFor(n int) strategy {
	switch n {
	case 2:
		// A: 磷酸盐、硫酸盐等；B: 钙盐、螯合铁和酸
		return strategy{
			tanks: 2,
			assign: func(f *model.Fertilizer) int {
				if f.Family == model.FamilyCalcium || f.Chelated {
					return 1
				}
				return 0
			},
			acidTank: 1,
		}
	case 3:
		// A: 钙盐、硝酸盐、螯合铁；B: 磷酸盐、硫酸盐、氯化物、微量元素；C: 酸
		return strategy{
			tanks: 3,
			assign: func(f *model.Fertilizer) int {
				if f.Family == model.FamilyCalcium || f.Family == model.FamilyNitrate || f.Chelated {
					return 0
				}
				return 1
			},
			acidTank: 2,
		}
	case 4:
		// A: 磷酸盐；B: 钾镁盐；C: 钙盐；D: 微量元素和酸
		return strategy{
			tanks: 4,
			assign: func(f *model.Fertilizer) int {
				switch f.Family {
				case model.FamilyPhosphate:
					return 0
				case model.FamilyCalcium:
					return 2
				case model.FamilyMicronutrient:
					return 3
				}
				return 1
			},
			acidTank: 3,
		}
	}
	// 按化学族分罐，族多于罐时合并到倒数第二个罐，最后一个罐只放酸
	return strategy{
		tanks: n,
		assign: func(f *model.Fertilizer) int {
			i := familyBucket(f)
			if i > n-2 {
				i = n - 2
			}
			return i
		},
		acidTank: n - 1,
	}
}

// 硝酸盐、磷酸盐、硫酸盐、氯化物、微量元素
func familyBucket(f *model.Fertilizer) int {
	switch f.Family {
	case model.FamilyCalcium:
		if _, ok := f.Elements[catalog.N]; ok {
			return 0
		}
		return 3
	case model.FamilyNitrate:
		return 0
	case model.FamilyPhosphate:
		return 1
	case model.FamilySulfate:
		return 2
	case model.FamilyChloride:
		return 3
	}
	return 4
}

func tankName(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("T%d", i+1)
}
