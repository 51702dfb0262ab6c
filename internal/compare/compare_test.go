package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name         string
		guess        string
		target       string
		allowPartial bool
		want         Status
	}{
		{"exact match", "Ahri", "Ahri", true, StatusCorrect},
		{"case insensitive", "aHRI", "Ahri", true, StatusCorrect},
		{"whitespace trimmed", " Ahri ", "Ahri", false, StatusCorrect},
		{"guess contains target", "Monkey D. Luffy", "Luffy", true, StatusPartial},
		{"target contains guess is not partial", "Luffy", "Monkey D. Luffy", true, StatusWrong},
		{"partial disabled", "Monkey D. Luffy", "Luffy", false, StatusWrong},
		{"disjoint", "Garen", "Ahri", true, StatusWrong},
		{"empty guess", "", "Ahri", true, StatusWrong},
		{"empty target", "Ahri", "", true, StatusWrong},
		{"both empty", "", "", true, StatusWrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.guess, tt.target, tt.allowPartial))
		})
	}
}

func TestTextSelfCompare(t *testing.T) {
	for _, s := range []string{"Ahri", "garen", "Dr. Mundo", "Kog'Maw"} {
		assert.Equal(t, StatusCorrect, Text(s, s, true), s)
		assert.Equal(t, StatusCorrect, Text(s, s, false), s)
	}
}

func TestTagSet(t *testing.T) {
	tests := []struct {
		name   string
		guess  []string
		target []string
		want   Status
	}{
		{"equal single", []string{"Mage"}, []string{"Mage"}, StatusCorrect},
		{"equal unordered", []string{"Mid", "Top"}, []string{"Top", "Mid"}, StatusCorrect},
		{"equal case insensitive", []string{"MAGE"}, []string{"mage"}, StatusCorrect},
		{"duplicates collapse", []string{"Mage", "mage"}, []string{"Mage"}, StatusCorrect},
		{"overlap unequal size", []string{"Mage"}, []string{"Mage", "Assassin"}, StatusPartial},
		{"overlap both ways", []string{"Mage", "Support"}, []string{"Mage", "Assassin"}, StatusPartial},
		{"disjoint", []string{"Mage"}, []string{"Fighter"}, StatusWrong},
		{"nil guess", nil, []string{"Mage"}, StatusWrong},
		{"nil target", []string{"Mage"}, nil, StatusWrong},
		{"both nil", nil, nil, StatusWrong},
		{"empty strings ignored", []string{""}, []string{"Mage"}, StatusWrong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TagSet(tt.guess, tt.target))
		})
	}
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		name   string
		guess  float64
		target float64
		want   Result
	}{
		{"equal", 2012, 2012, Result{Status: StatusCorrect, Arrow: ArrowNone}},
		{"guess below target hints higher", 2009, 2012, Result{Status: StatusWrong, Arrow: ArrowHigher}},
		{"guess above target hints lower", 2015, 2012, Result{Status: StatusWrong, Arrow: ArrowLower}},
		{"zero against present", 0, 175, Result{Status: StatusWrong, Arrow: ArrowHigher}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Numeric(tt.guess, tt.target))
		})
	}
}
