package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTripThroughColumn(t *testing.T) {
	v, err := StringList{"seo", "hosting"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["seo","hosting"]`, v)

	var got StringList
	require.NoError(t, got.Scan([]byte(`["seo","hosting"]`)))
	assert.Equal(t, StringList{"seo", "hosting"}, got)

	empty, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestScanRejectsUnknownSource(t *testing.T) {
	var n Notes
	assert.Error(t, n.Scan(42))
	assert.NoError(t, n.Scan(nil))
	assert.Nil(t, n)
}

func TestTrackingApplyOnlyMovesForward(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tr Tracking

	tr.Apply(Delivery{UserSent: true, At: first})
	assert.True(t, tr.EmailSent)
	assert.False(t, tr.AdminNotified)
	require.NotNil(t, tr.EmailSentAt)

	tr.Apply(Delivery{UserSent: true, AdminSent: true, At: first.Add(time.Hour)})
	assert.Equal(t, first, *tr.EmailSentAt)
	assert.True(t, tr.AdminNotified)

	tr.Apply(Delivery{})
	assert.True(t, tr.EmailSent)
	assert.True(t, tr.AdminNotified)
}

func TestBeforeCreateDefaults(t *testing.T) {
	c := &Contact{}
	require.NoError(t, c.BeforeCreate(nil))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ContactNew, c.Status)
	assert.Equal(t, "contact_form", c.Source)

	cs := &Consultation{}
	require.NoError(t, cs.BeforeCreate(nil))
	assert.Equal(t, ConsultationPending, cs.Status)
	assert.Equal(t, "email", cs.PreferredContactMethod)
	assert.Equal(t, "flexible", cs.PreferredTime)

	s := &ServiceInquiry{ID: "fixed"}
	require.NoError(t, s.BeforeCreate(nil))
	assert.Equal(t, "fixed", s.ID)
	assert.Equal(t, InquiryNew, s.Status)
	assert.Equal(t, "not_sure", s.PreferredStyle)
	assert.NotNil(t, s.AdditionalServices)
}

func TestEnumMembership(t *testing.T) {
	assert.True(t, Budget("100k_plus").Valid())
	assert.False(t, Budget("lots").Valid())
	assert.True(t, ServiceCustomAI.Valid())
	assert.False(t, InquiryStatus("archived").Valid())
	assert.Equal(t, []string{"new", "in_progress", "resolved", "closed"}, Strings(ContactStatuses))
}

func TestCatalogCoversEveryServiceType(t *testing.T) {
	c := Catalog()
	require.Len(t, c, len(ServiceTypes))
	for i, s := range ServiceTypes {
		assert.Equal(t, s, c[i].ID)
		assert.NotEmpty(t, c[i].Features)
	}
	assert.Equal(t, "Custom AI Solution", ServiceCustomAI.DisplayName())
	assert.Equal(t, "other", ServiceType("other").DisplayName())

	c[0].Features[0] = "changed"
	assert.Equal(t, "AI-driven design", Catalog()[0].Features[0])
}
