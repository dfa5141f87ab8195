package pricing

import (
	"testing"
	"time"

	"flamingo/internal/domain"

	"github.com/stretchr/testify/assert"
)

var standardRules = []domain.PricingRule{
	{MinAge: 0, MaxAge: 2, Price: 0},
	{MinAge: 3, MaxAge: 12, Price: 5000},
	{MinAge: 13, MaxAge: 120, Price: 12000},
}

func TestAge_BeforeBirthday(t *testing.T) {
	birth := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 23, Age(birth, asOf))
}

func TestAge_OnBirthday(t *testing.T) {
	birth := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// birthday == asOf counts as already reached
	assert.Equal(t, 24, Age(birth, asOf))
}

func TestAge_AfterBirthday(t *testing.T) {
	birth := time.Date(2000, 1, 31, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 24, Age(birth, asOf))
}

func TestFindRule_FirstMatchWins(t *testing.T) {
	overlapping := []domain.PricingRule{
		{MinAge: 0, MaxAge: 120, Price: 1000},
		{MinAge: 3, MaxAge: 12, Price: 5000},
	}

	rule := FindRule(overlapping, 10)
	assert.NotNil(t, rule)
	// ties broken by insertion order, not narrowest range
	assert.Equal(t, 1000.0, rule.Price)
}

func TestFindRule_NoMatch(t *testing.T) {
	assert.Nil(t, FindRule(standardRules, 121))
	assert.Nil(t, FindRule(standardRules, -1))
}

func TestCalculate_PerPersonRoom(t *testing.T) {
	rooms := []domain.RoomType{
		{Label: "Double", Price: 3000, Capacity: 2, PricePerPerson: true},
	}
	clients := []domain.Client{
		{FullName: "Amine B.", BirthDate: "2004-03-01", RoomTypeSelected: "Double"},
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, res.Clients, 1)
	assert.Equal(t, 15000.0, res.Clients[0].PrixFinal)
	assert.Equal(t, 15000.0, res.Total)
}

func TestCalculate_RoomSplit(t *testing.T) {
	rooms := []domain.RoomType{
		{Label: "Triple", Price: 9000, Capacity: 3, PricePerPerson: false},
	}
	clients := []domain.Client{
		{FullName: "A", BirthDate: "1990-01-01", RoomTypeSelected: "Triple"},
		{FullName: "B", BirthDate: "1991-01-01", RoomTypeSelected: "Triple"},
		{FullName: "C", BirthDate: "1992-01-01", RoomTypeSelected: "Triple"},
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, res.Clients, 3)
	for _, c := range res.Clients {
		assert.Equal(t, 15000.0, c.PrixFinal)
	}
	assert.Equal(t, 45000.0, res.Total)
}

func TestCalculate_RoomSplitAcrossWholeGroup(t *testing.T) {
	// 5 clients choosing "Double" split the room price by 5, not by pairs.
	rooms := []domain.RoomType{
		{Label: "Double", Price: 10000, Capacity: 2, PricePerPerson: false},
	}
	clients := make([]domain.Client, 5)
	for i := range clients {
		clients[i] = domain.Client{BirthDate: "1990-01-01", RoomTypeSelected: "Double"}
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, 14000.0, res.Clients[0].PrixFinal)
	assert.Equal(t, 70000.0, res.Total)
}

func TestCalculate_UnmatchedRoomSkipped(t *testing.T) {
	rooms := []domain.RoomType{
		{Label: "Double", Price: 3000, Capacity: 2, PricePerPerson: true},
	}
	clients := []domain.Client{
		{FullName: "A", BirthDate: "1990-01-01", RoomTypeSelected: "Suite"},
		{FullName: "B", BirthDate: "1990-01-01", RoomTypeSelected: "Double"},
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	// the "Suite" client is excluded and contributes nothing
	assert.Len(t, res.Clients, 1)
	assert.Equal(t, "B", res.Clients[0].FullName)
	assert.Equal(t, 15000.0, res.Total)
}

func TestCalculate_UnmatchedRoomErrorPolicy(t *testing.T) {
	clients := []domain.Client{
		{BirthDate: "1990-01-01", RoomTypeSelected: "Suite"},
	}

	_, err := Calculate(clients, standardRules, nil, Options{
		OnUnmatchedRoom: UnmatchedRoomError,
		AsOf:            time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrUnmatchedRoom)
}

func TestCalculate_UnmatchedRoomZeroPolicy(t *testing.T) {
	clients := []domain.Client{
		{BirthDate: "1990-01-01", RoomTypeSelected: "Suite"},
	}

	res, err := Calculate(clients, standardRules, nil, Options{
		OnUnmatchedRoom: UnmatchedRoomZero,
		AsOf:            time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, res.Clients, 1)
	assert.Equal(t, 12000.0, res.Clients[0].PrixFinal)
}

func TestCalculate_NoRuleMatchMeansBaseZero(t *testing.T) {
	rules := []domain.PricingRule{{MinAge: 0, MaxAge: 2, Price: 0}}
	rooms := []domain.RoomType{
		{Label: "Single", Price: 4000, Capacity: 1, PricePerPerson: true},
	}
	clients := []domain.Client{
		{BirthDate: "1990-01-01", RoomTypeSelected: "Single"},
	}

	res, err := Calculate(clients, rules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, 4000.0, res.Clients[0].PrixFinal)
}

func TestCalculate_MalformedBirthDatePricedAtBaseZero(t *testing.T) {
	rooms := []domain.RoomType{
		{Label: "Single", Price: 4000, Capacity: 1, PricePerPerson: true},
	}
	clients := []domain.Client{
		{BirthDate: "not-a-date", RoomTypeSelected: "Single"},
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Len(t, res.Clients, 1)
	assert.Equal(t, 4000.0, res.Clients[0].PrixFinal)
}

func TestCalculate_OnlyTotalIsRounded(t *testing.T) {
	rooms := []domain.RoomType{
		{Label: "Triple", Price: 1000, Capacity: 3, PricePerPerson: false},
	}
	clients := []domain.Client{
		{BirthDate: "1990-01-01", RoomTypeSelected: "Triple"},
		{BirthDate: "1990-01-01", RoomTypeSelected: "Triple"},
		{BirthDate: "1990-01-01", RoomTypeSelected: "Triple"},
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	// per-client values keep the fractional split
	assert.InDelta(t, 12333.333, res.Clients[0].PrixFinal, 0.001)
	assert.Equal(t, 37000.0, res.Total)
}

func TestCalculate_GroupOrderIsDeterministic(t *testing.T) {
	rooms := []domain.RoomType{
		{Label: "Double", Price: 3000, Capacity: 2, PricePerPerson: true},
		{Label: "Single", Price: 4000, Capacity: 1, PricePerPerson: true},
	}
	clients := []domain.Client{
		{FullName: "A", BirthDate: "1990-01-01", RoomTypeSelected: "Single"},
		{FullName: "B", BirthDate: "1990-01-01", RoomTypeSelected: "Double"},
		{FullName: "C", BirthDate: "1990-01-01", RoomTypeSelected: "Single"},
	}

	res, err := Calculate(clients, standardRules, rooms, Options{
		AsOf: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	// groups emitted in first-appearance order of their labels
	assert.Equal(t, "A", res.Clients[0].FullName)
	assert.Equal(t, "C", res.Clients[1].FullName)
	assert.Equal(t, "B", res.Clients[2].FullName)
}
