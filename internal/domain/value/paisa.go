package value

import (
	"math"
	"strconv"
	"strings"
)

// Paisa сумма в минимальных единицах рупии (1 ₹ = 100 paisa).
type Paisa int64

// FromRupees переводит цену в рупиях в paisa с округлением.
func FromRupees(rupees float64) Paisa {
	return Paisa(math.Round(rupees * 100)) //nolint:mnd
}

func (p Paisa) Rupees() float64 {
	return float64(p) / 100 //nolint:mnd
}

// String форматирует сумму в целых рупиях с индийской группировкой разрядов: ₹12,34,567.
func (p Paisa) String() string {
	rupees := int64(math.Round(p.Rupees()))

	sign := ""
	if rupees < 0 {
		sign = "-"
		rupees = -rupees
	}

	return sign + "₹" + groupIndian(strconv.FormatInt(rupees, 10))
}

func groupIndian(digits string) string {
	if len(digits) <= 3 { //nolint:mnd
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string

	for len(head) > 2 { //nolint:mnd
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}

	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(append(groups, tail), ",")
}
