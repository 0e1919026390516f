package render

// popDuration is how long the pop-in animation runs before the text settles
// at full size.
const popDuration = 0.25

// back-easing constant; controls how far the pop overshoots
const backOvershoot = 1.70158

// Pop maps elapsed display time in seconds to a scale multiplier. The text
// grows from nothing, overshoots full size slightly, and settles at 1. Total
// for every non-negative input; inputs past the animation window return 1.
func Pop(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= popDuration {
		return 1
	}

	x := t/popDuration - 1
	return 1 + (backOvershoot+1)*x*x*x + backOvershoot*x*x
}
