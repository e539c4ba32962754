// Package easing maps curve names to the easing functions they stand for.
// The registry is closed: it is built once from the curves fogleman/ease
// ships and never consults anything dynamic, so an unknown name is simply a
// missing key for the caller to handle, not a lookup failure.
package easing

import (
	"github.com/fogleman/ease"
	"golang.org/x/exp/slices"
)

// DefaultName is the curve used when no (or an unknown) name is given.
const DefaultName = "easeOutCubic"

var registry = map[string]ease.Function{
	"linear":           ease.Linear,
	"easeInQuad":       ease.InQuad,
	"easeOutQuad":      ease.OutQuad,
	"easeInOutQuad":    ease.InOutQuad,
	"easeInCubic":      ease.InCubic,
	"easeOutCubic":     ease.OutCubic,
	"easeInOutCubic":   ease.InOutCubic,
	"easeInQuart":      ease.InQuart,
	"easeOutQuart":     ease.OutQuart,
	"easeInOutQuart":   ease.InOutQuart,
	"easeInQuint":      ease.InQuint,
	"easeOutQuint":     ease.OutQuint,
	"easeInOutQuint":   ease.InOutQuint,
	"easeInSine":       ease.InSine,
	"easeOutSine":      ease.OutSine,
	"easeInOutSine":    ease.InOutSine,
	"easeInExpo":       ease.InExpo,
	"easeOutExpo":      ease.OutExpo,
	"easeInOutExpo":    ease.InOutExpo,
	"easeInCirc":       ease.InCirc,
	"easeOutCirc":      ease.OutCirc,
	"easeInOutCirc":    ease.InOutCirc,
	"easeInElastic":    ease.InElastic,
	"easeOutElastic":   ease.OutElastic,
	"easeInOutElastic": ease.InOutElastic,
	"easeInBack":       ease.InBack,
	"easeOutBack":      ease.OutBack,
	"easeInOutBack":    ease.InOutBack,
	"easeInBounce":     ease.InBounce,
	"easeOutBounce":    ease.OutBounce,
	"easeInOutBounce":  ease.InOutBounce,
}

// Lookup returns the easing function registered under name.
func Lookup(name string) (ease.Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Default returns the curve registered under DefaultName.
func Default() ease.Function {
	return registry[DefaultName]
}

// Names returns every registered curve name in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
