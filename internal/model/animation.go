package model

import "strings"

// Animation tags a structural change so the viewport can choose how to
// present it. None asks the viewport for a plain data reload.
type Animation int

const (
	AnimationFade Animation = iota
	AnimationRight
	AnimationLeft
	AnimationTop
	AnimationBottom
	AnimationNone
	AnimationMiddle
	AnimationAutomatic
)

var animationNames = [...]string{
	AnimationFade:      "fade",
	AnimationRight:     "right",
	AnimationLeft:      "left",
	AnimationTop:       "top",
	AnimationBottom:    "bottom",
	AnimationNone:      "none",
	AnimationMiddle:    "middle",
	AnimationAutomatic: "automatic",
}

func (a Animation) String() string {
	if a < 0 || int(a) >= len(animationNames) {
		return "automatic"
	}
	return animationNames[a]
}

// ParseAnimation maps a name to an Animation; unknown names are Automatic.
func ParseAnimation(s string) Animation {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range animationNames {
		if name == s {
			return Animation(i)
		}
	}
	return AnimationAutomatic
}
