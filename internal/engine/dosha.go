package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDosha    = errors.New("invalid dosha")
	ErrInvalidSeason   = errors.New("invalid season")
	ErrInvalidRegion   = errors.New("invalid region")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrInvalidTargets  = errors.New("invalid nutrition targets")
)

// Dosha is a constitution: one of the three primaries or a canonical pair.
type Dosha string

const (
	Vata       Dosha = "Vata"
	Pitta      Dosha = "Pitta"
	Kapha      Dosha = "Kapha"
	VataPitta  Dosha = "Vata-Pitta"
	PittaKapha Dosha = "Pitta-Kapha"
	VataKapha  Dosha = "Vata-Kapha"
)

// AllDoshas lists the accepted constitutions in display order.
var AllDoshas = []Dosha{Vata, Pitta, Kapha, VataPitta, PittaKapha, VataKapha}

// primaryOrder fixes the canonical position of each primary in a pair.
var primaryOrder = map[Dosha]int{Vata: 0, Pitta: 1, Kapha: 2}

// ParseDosha accepts the six canonical strings, any casing, and pairs in either order.
func ParseDosha(s string) (Dosha, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	switch len(parts) {
	case 1:
		d, ok := parsePrimary(parts[0])
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidDosha, s)
		}
		return d, nil
	case 2:
		a, okA := parsePrimary(parts[0])
		b, okB := parsePrimary(parts[1])
		if !okA || !okB || a == b {
			return "", fmt.Errorf("%w: %q", ErrInvalidDosha, s)
		}
		return Combine(a, b)
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDosha, s)
}

func parsePrimary(s string) (Dosha, bool) {
	for d := range primaryOrder {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// Combine joins two distinct primaries in canonical Vata < Pitta < Kapha order.
func Combine(a, b Dosha) (Dosha, error) {
	ia, okA := primaryOrder[a]
	ib, okB := primaryOrder[b]
	if !okA || !okB || a == b {
		return "", fmt.Errorf("%w: cannot combine %q and %q", ErrInvalidDosha, a, b)
	}
	if ia > ib {
		a, b = b, a
	}
	return Dosha(string(a) + "-" + string(b)), nil
}

// Valid reports whether d is one of the six canonical values.
func (d Dosha) Valid() bool {
	for _, v := range AllDoshas {
		if d == v {
			return true
		}
	}
	return false
}

// Primaries splits a constitution into its primary doshas.
func (d Dosha) Primaries() []Dosha {
	if !d.Valid() {
		return nil
	}
	parts := strings.Split(string(d), "-")
	out := make([]Dosha, 0, len(parts))
	for _, p := range parts {
		out = append(out, Dosha(p))
	}
	return out
}

// Has reports whether primary p is part of d.
func (d Dosha) Has(p Dosha) bool {
	for _, q := range d.Primaries() {
		if q == p {
			return true
		}
	}
	return false
}

// Rasa is one of the six tastes.
type Rasa string

const (
	Sweet      Rasa = "Sweet"
	Sour       Rasa = "Sour"
	Salty      Rasa = "Salty"
	Pungent    Rasa = "Pungent"
	Bitter     Rasa = "Bitter"
	Astringent Rasa = "Astringent"
)

var AllRasas = []Rasa{Sweet, Sour, Salty, Pungent, Bitter, Astringent}

func (r Rasa) Valid() bool {
	for _, v := range AllRasas {
		if r == v {
			return true
		}
	}
	return false
}

type Season string

const (
	Summer    Season = "Summer"
	Winter    Season = "Winter"
	Monsoon   Season = "Monsoon"
	Spring    Season = "Spring"
	Autumn    Season = "Autumn"
	AllSeason Season = "All-Season"
)

var AllSeasons = []Season{Summer, Winter, Monsoon, Spring, Autumn, AllSeason}

// ParseSeason maps an empty string to All-Season.
func ParseSeason(s string) (Season, error) {
	if strings.TrimSpace(s) == "" {
		return AllSeason, nil
	}
	for _, v := range AllSeasons {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeason, s)
}

type Region string

const (
	North    Region = "North"
	South    Region = "South"
	East     Region = "East"
	West     Region = "West"
	PanIndia Region = "Pan-India"
)

var AllRegions = []Region{North, South, East, West, PanIndia}

// ParseRegion maps an empty string to Pan-India.
func ParseRegion(s string) (Region, error) {
	if strings.TrimSpace(s) == "" {
		return PanIndia, nil
	}
	for _, v := range AllRegions {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRegion, s)
}

// MealType is a named eating occasion within a day.
type MealType string

const (
	Breakfast       MealType = "Breakfast"
	MidMorningSnack MealType = "Mid-Morning Snack"
	Lunch           MealType = "Lunch"
	EveningSnack    MealType = "Evening Snack"
	Dinner          MealType = "Dinner"
)

// FullDaySlots is the five-slot day; FastSlots is the three-slot day.
var (
	FullDaySlots = []MealType{Breakfast, MidMorningSnack, Lunch, EveningSnack, Dinner}
	FastSlots    = []MealType{Breakfast, Lunch, Dinner}
)

func ParseMealType(s string) (MealType, error) {
	for _, v := range FullDaySlots {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMealType, s)
}

// IsSnack reports whether m is one of the two snack slots.
func (m MealType) IsSnack() bool {
	return m == MidMorningSnack || m == EveningSnack
}

// CalorieShare is the fraction of the daily calorie target given to each slot.
var CalorieShare = map[MealType]float64{
	Breakfast:       0.2,
	MidMorningSnack: 0.1,
	Lunch:           0.35,
	EveningSnack:    0.1,
	Dinner:          0.25,
}

// ItemCount is how many dishes a slot is composed of before calorie top-up.
var ItemCount = map[MealType]int{
	Breakfast:       1,
	MidMorningSnack: 1,
	Lunch:           2,
	EveningSnack:    1,
	Dinner:          2,
}

// WeekDays are the day labels of a full plan.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// FastDays are the day labels of a fast plan.
var FastDays = []string{"Day 1", "Day 2", "Day 3"}
