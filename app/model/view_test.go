package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationSummary_ZeroFilled(t *testing.T) {
	s := NewValidationSummary()

	assert.Equal(t, ValidationSummary{
		"Benar/Valid":  0,
		"Memang Gelap": 0,
		"Sudah Aman":   0,
		"Ada Polisi":   0,
	}, s)
}

func TestValidationSummary_AddDropsUnknownTags(t *testing.T) {
	s := NewValidationSummary()
	s.Add(TagValid, 3)
	s.Add(TagPolice, 1)
	s.Add("Hoax", 7)

	assert.Len(t, s, 4)
	assert.Equal(t, int64(3), s[TagValid])
	assert.Equal(t, int64(1), s[TagPolice])
	_, ok := s["Hoax"]
	assert.False(t, ok)
}

func TestNewReportView_NilSummaryIsZeroFilled(t *testing.T) {
	v := NewReportView(Report{ID: 9, Status: StatusPending}, nil, nil)

	assert.Equal(t, uint(9), v.ID)
	assert.Nil(t, v.Image)
	assert.Equal(t, NewValidationSummary(), v.Validations)
}

func TestNewReportStats_AllKeysPresent(t *testing.T) {
	st := NewReportStats()

	assert.Len(t, st.ByStatus, 3)
	assert.Len(t, st.ByCategory, 4)
	for _, s := range Statuses {
		assert.Contains(t, st.ByStatus, s)
	}
	for _, c := range Categories {
		assert.Contains(t, st.ByCategory, c)
	}
}

func TestIsValidStatusAndCategory(t *testing.T) {
	assert.True(t, IsValidStatus("verified"))
	assert.False(t, IsValidStatus("bogus"))
	assert.True(t, IsValidCategory("lamp"))
	assert.False(t, IsValidCategory("flood"))
}
