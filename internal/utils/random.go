package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/marcusball/class-scheduler/internal/domain"
)

var subjects = []string{
	"Calculus", "Physics", "Chemistry", "Biology", "Writing", "History",
	"Economics", "Statistics", "Philosophy", "Spanish", "Music", "Art",
	"Geology", "Psychology", "Algebra", "Literature",
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

var digits = "0123456789"

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(26)]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

// Fisher-Yates shuffle, then keep a random non-empty prefix
func GenerateRandomDayGroup() string {
	codes := []byte("MTWRF")

	for i := len(codes) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		codes[i], codes[j] = codes[j], codes[i]
	}

	n := rand.Intn(3) + 1
	return string(codes[:n])
}

// GenerateRandomSlot returns a notation such as "MWF3" or "TR5-6" within periods 1..8.
func GenerateRandomSlot() string {
	start := rand.Intn(8) + 1
	if rand.Intn(3) == 0 && start < 8 {
		return fmt.Sprintf("%s%d-%d", GenerateRandomDayGroup(), start, start+1)
	}
	return fmt.Sprintf("%s%d", GenerateRandomDayGroup(), start)
}

// GenerateRandomCatalog builds a catalog of classNum classes with up to sectionNum sections each.
func GenerateRandomCatalog(classNum int, sectionNum int) *domain.ScheduleOptions {
	options := &domain.ScheduleOptions{
		Periods: []int{1, 2, 3, 4, 5, 6, 7, 8},
		Classes: make([]domain.Class, classNum),
	}

	perm := rand.Perm(len(subjects))
	for i := range options.Classes {
		name := subjects[perm[i%len(perm)]]
		if i >= len(subjects) {
			name = fmt.Sprintf("%s %d", name, i/len(subjects)+1)
		}

		sections := make([]domain.Section, rand.Intn(sectionNum)+1)
		for j := range sections {
			// most sections are one notation, labs add a second meeting
			section := domain.Section{GenerateRandomSlot()}
			if rand.Intn(4) == 0 {
				section = append(section, GenerateRandomSlot())
			}
			sections[j] = section
		}

		options.Classes[i] = domain.Class{Name: name, Sections: sections}
	}

	return options
}

// SampleCatalog is the catalog shipped as Classes.toml.
func SampleCatalog() *domain.ScheduleOptions {
	return &domain.ScheduleOptions{
		Periods: []int{1, 2, 3, 4, 5, 6, 7, 8},
		Classes: []domain.Class{
			{Name: "Calculus", Sections: []domain.Section{{"MWF2"}, {"MWF4"}, {"TR2-3"}}},
			{Name: "Physics", Sections: []domain.Section{{"MWF2", "R6-7"}, {"TR4-5"}}},
			{Name: "Writing", Sections: []domain.Section{{"TR2-3"}, {"MW5-6"}}},
			{Name: "History", Sections: []domain.Section{{"MWF3"}, {"TR6-7"}}},
		},
	}
}

// CatalogName derives a readable name for a generated catalog.
func CatalogName(options *domain.ScheduleOptions) string {
	names := make([]string, 0, len(options.Classes))
	for _, class := range options.Classes {
		names = append(names, class.Name)
	}
	if len(names) > 3 {
		names = append(names[:3], "...")
	}
	return strings.Join(names, ", ") + " #" + GenerateRandomID(3, 3)
}
