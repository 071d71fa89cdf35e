package presenter

import "strconv"

type Badge struct {
	Text    string
	Visible bool
}

// BadgeFor hides the badge for an empty cart.
func BadgeFor(count int) Badge {
	if count <= 0 {
		return Badge{Text: "0"}
	}
	return Badge{Text: strconv.Itoa(count), Visible: true}
}
