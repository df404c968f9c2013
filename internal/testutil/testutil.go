// Package testutil provides testing utilities and helpers for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/stretchr/testify/mock"
)

// MockSite is a mock Content Provider that records every Fetch call.
type MockSite struct {
	mock.Mock
}

// Fetch mocks the Fetch method.
func (m *MockSite) Fetch(ctx context.Context, id horoscope.Identity) map[horoscope.ContentType][]byte {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[horoscope.ContentType][]byte)
}

// NewMockSite creates a mock site answering every Fetch with texts.
func NewMockSite(t *testing.T, texts map[horoscope.ContentType][]byte) *MockSite {
	t.Helper()
	m := new(MockSite)

	m.On("Fetch", mock.Anything, mock.Anything).
		Return(texts).
		Maybe()

	return m
}

// NewFailingSite creates a mock site whose fetches all failed, i.e. every
// slot degraded to the placeholder.
func NewFailingSite(t *testing.T) *MockSite {
	t.Helper()
	return NewMockSite(t, Texts(string(horoscope.Placeholder), string(horoscope.Placeholder), string(horoscope.Placeholder)))
}

// Texts builds a content map in ContentType order (daily, weekly, monthly).
func Texts(daily, weekly, monthly string) map[horoscope.ContentType][]byte {
	return map[horoscope.ContentType][]byte{
		horoscope.Daily:   []byte(daily),
		horoscope.Weekly:  []byte(weekly),
		horoscope.Monthly: []byte(monthly),
	}
}

// MockSites creates one mock site per Source, each answering with texts.
func MockSites(t *testing.T, texts map[horoscope.ContentType][]byte) map[horoscope.Source]*MockSite {
	t.Helper()

	sites := make(map[horoscope.Source]*MockSite, horoscope.NumSources)
	for _, source := range horoscope.Sources() {
		sites[source] = NewMockSite(t, texts)
	}
	return sites
}

// AssertFetchCount asserts how many times a mock site was asked to fetch.
func AssertFetchCount(t *testing.T, site *MockSite, expected int) {
	t.Helper()
	site.AssertNumberOfCalls(t, "Fetch", expected)
}
