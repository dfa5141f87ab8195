package pricing

import (
	"fmt"
	"math"
	"time"

	"flamingo/internal/domain"
)

// UnmatchedRoomPolicy controls what happens when a client selects a room
// label that does not exist on the offer.
type UnmatchedRoomPolicy string

const (
	// UnmatchedRoomSkip drops the whole group silently: no price assigned,
	// nothing contributed to the total. This matches the historical
	// behavior and is the default.
	UnmatchedRoomSkip UnmatchedRoomPolicy = "skip"
	// UnmatchedRoomError rejects the roster with a validation error naming
	// the unknown label.
	UnmatchedRoomError UnmatchedRoomPolicy = "error"
	// UnmatchedRoomZero prices the group as if the room supplement were 0.
	UnmatchedRoomZero UnmatchedRoomPolicy = "zero"
)

type Options struct {
	OnUnmatchedRoom UnmatchedRoomPolicy
	// AsOf is the reference date for age calculation. Zero value means now.
	AsOf time.Time
}

type Result struct {
	Clients []domain.Client
	Total   float64
}

// Age returns completed years between birth and asOf: the naive year
// difference, minus one when asOf's month/day precede the birthday.
// A birthday falling exactly on asOf counts as already reached.
func Age(birth, asOf time.Time) int {
	age := asOf.Year() - birth.Year()
	m := int(asOf.Month()) - int(birth.Month())
	if m < 0 || (m == 0 && asOf.Day() < birth.Day()) {
		age--
	}
	return age
}

// FindRule returns the first rule in table order whose age range contains
// age, or nil when none matches. Overlaps are resolved by insertion order,
// never by narrowest range.
func FindRule(rules []domain.PricingRule, age int) *domain.PricingRule {
	for i := range rules {
		if age >= rules[i].MinAge && age <= rules[i].MaxAge {
			return &rules[i]
		}
	}
	return nil
}

func roomTypeByLabel(roomTypes []domain.RoomType, label string) *domain.RoomType {
	for i := range roomTypes {
		if roomTypes[i].Label == label {
			return &roomTypes[i]
		}
	}
	return nil
}

// Calculate computes prixFinal for each client and the reservation total.
// Clients are grouped by selected room label; a unit-priced room is split
// evenly across every client of the group within this one reservation.
// Individual prixFinal values stay unrounded; only the total is rounded.
//
// An unparsable birth date yields an age no rule matches, so the client is
// priced at base 0 plus the room supplement.
func Calculate(clients []domain.Client, rules []domain.PricingRule, roomTypes []domain.RoomType, opts Options) (Result, error) {
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	// Group by room label, preserving first-appearance order so output is
	// deterministic regardless of map iteration.
	labels := make([]string, 0, len(clients))
	groups := make(map[string][]domain.Client)
	for _, c := range clients {
		if _, seen := groups[c.RoomTypeSelected]; !seen {
			labels = append(labels, c.RoomTypeSelected)
		}
		groups[c.RoomTypeSelected] = append(groups[c.RoomTypeSelected], c)
	}

	var total float64
	out := make([]domain.Client, 0, len(clients))

	for _, label := range labels {
		group := groups[label]
		room := roomTypeByLabel(roomTypes, label)
		var supplement, perPerson float64
		switch {
		case room != nil && room.PricePerPerson:
			perPerson = room.Price
		case room != nil:
			supplement = room.Price / float64(len(group))
		default:
			switch opts.OnUnmatchedRoom {
			case UnmatchedRoomError:
				return Result{}, fmt.Errorf("unknown room type %q: %w", label, ErrUnmatchedRoom)
			case UnmatchedRoomZero:
				// priced with a zero room supplement
			default:
				continue
			}
		}

		for _, c := range group {
			base := 0.0
			if rule := FindRule(rules, clientAge(c, asOf)); rule != nil {
				base = rule.Price
			}
			c.PrixFinal = base + perPerson + supplement
			out = append(out, c)
			total += c.PrixFinal
		}
	}

	return Result{Clients: out, Total: math.Round(total)}, nil
}

func clientAge(c domain.Client, asOf time.Time) int {
	birth, err := parseBirthDate(c.BirthDate)
	if err != nil {
		return -1
	}
	return Age(birth, asOf)
}

func parseBirthDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
