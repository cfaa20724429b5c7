package render

import "fmt"

type RuleKind uint8

const (
	RuleSingle RuleKind = iota
	RuleBed
	RuleCrops
	RulePillar
	RuleWaterloggable
)

func (k RuleKind) String() string {
	switch k {
	case RuleSingle:
		return "single"
	case RuleBed:
		return "bed"
	case RuleCrops:
		return "crops"
	case RulePillar:
		return "pillar"
	case RuleWaterloggable:
		return "waterloggable"
	default:
		return fmt.Sprintf("RuleKind(%d)", uint8(k))
	}
}

// BlockMapColor is the rule selecting concrete map color from block properties.
//
// Meaning of the two colors depends on the kind:
//
//	single         first only
//	bed            head, foot
//	crops          growing, grown
//	pillar         top, side
//	waterloggable  dry, wet
type BlockMapColor struct {
	Kind   RuleKind
	first  MapColor
	second MapColor
}

func Single(c MapColor) BlockMapColor {
	return BlockMapColor{Kind: RuleSingle, first: c, second: c}
}

func Bed(head, foot MapColor) BlockMapColor {
	return BlockMapColor{Kind: RuleBed, first: head, second: foot}
}

func Crops(growing, grown MapColor) BlockMapColor {
	return BlockMapColor{Kind: RuleCrops, first: growing, second: grown}
}

func Pillar(top, side MapColor) BlockMapColor {
	return BlockMapColor{Kind: RulePillar, first: top, second: side}
}

func Waterloggable(dry, wet MapColor) BlockMapColor {
	return BlockMapColor{Kind: RuleWaterloggable, first: dry, second: wet}
}

// Select reduces the rule against block properties
func (r BlockMapColor) Select(props map[string]string) MapColor {
	switch r.Kind {
	case RuleBed:
		if props["part"] == "head" {
			return r.first
		}
		return r.second
	case RuleCrops:
		if props["age"] == "7" {
			return r.second
		}
		return r.first
	case RulePillar:
		if axis, ok := props["axis"]; ok && axis != "y" {
			return r.second
		}
		return r.first
	case RuleWaterloggable:
		if props["waterlogged"] == "true" {
			return r.second
		}
		return r.first
	default:
		return r.first
	}
}

func (r BlockMapColor) String() string {
	if r.Kind == RuleSingle {
		return fmt.Sprintf("single(%s)", r.first)
	}
	return fmt.Sprintf("%s(%s, %s)", r.Kind, r.first, r.second)
}
