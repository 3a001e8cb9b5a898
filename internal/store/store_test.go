package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadcapture/internal/domain"
	"leadcapture/internal/store"
	"leadcapture/internal/testutil"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newContact(name string, p domain.Priority, at time.Time) *domain.Contact {
	c := &domain.Contact{
		Name:     name,
		Email:    name + "@example.com",
		Subject:  "Website question",
		Message:  "I would like to know more about your services.",
		Priority: p,
	}
	c.CreatedAt = at
	return c
}

func newConsultation(name string, score int, at time.Time) *domain.Consultation {
	c := &domain.Consultation{
		Name:              name,
		Email:             name + "@example.com",
		Phone:             "+15551234567",
		Company:           "Acme",
		BusinessSize:      domain.BusinessSize("11-50"),
		CurrentChallenges: "Too much manual work in sales follow up.",
		Budget:            domain.Budget("15k_50k"),
		Timeline:          domain.TimelineMonth,
		LeadScore:         score,
		Priority:          domain.PriorityMedium,
	}
	c.CreatedAt = at
	return c
}

func newInquiry(name string, st domain.ServiceType, value float64, at time.Time) *domain.ServiceInquiry {
	in := &domain.ServiceInquiry{
		Name:               name,
		Email:              name + "@example.com",
		ServiceType:        st,
		ProjectDescription: "We need a modern site with an assistant.",
		Budget:             domain.Budget("5k_15k"),
		Timeline:           domain.TimelineMonth,
		EstimatedValue:     value,
		Priority:           domain.PriorityMedium,
	}
	in.CreatedAt = at
	return in
}

func TestContactCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	contacts := store.NewContacts(testutil.SetupTestDB(t))

	c := newContact("ada", domain.PriorityHigh, base)
	require.NoError(t, contacts.Create(ctx, c))
	assert.Len(t, c.ID, 36)

	got, err := contacts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactNew, got.Status)
	assert.Equal(t, "contact_form", got.Source)
	assert.Equal(t, domain.Notes{}, got.Notes)
	assert.False(t, got.EmailSent)
	assert.Nil(t, got.EmailSentAt)
	assert.True(t, base.Equal(got.CreatedAt))

	again, err := contacts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)

	_, err := store.NewContacts(db).Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = store.NewConsultations(db).Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = store.NewServiceInquiries(db).Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestContactListPagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	contacts := store.NewContacts(testutil.SetupTestDB(t))

	for i, name := range []string{"a", "b", "c", "d", "e"} {
		p := domain.PriorityMedium
		if i%2 == 0 {
			p = domain.PriorityHigh
		}
		require.NoError(t, contacts.Create(ctx, newContact(name, p, base.Add(time.Duration(i)*time.Minute))))
	}

	items, page, err := contacts.List(ctx, store.ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, store.Page{Page: 1, Limit: 2, Total: 5, Pages: 3}, page)
	require.Len(t, items, 2)
	assert.Equal(t, "e", items[0].Name)
	assert.Equal(t, "d", items[1].Name)

	items, page, err = contacts.List(ctx, store.ListQuery{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Name)

	items, page, err = contacts.List(ctx, store.ListQuery{Priority: "high", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 10, page.Limit)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].Name)

	items, page, err = contacts.List(ctx, store.ListQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.EqualValues(t, 5, page.Total)
}

func TestListClampsLimitAndIgnoresUnknownSort(t *testing.T) {
	ctx := context.Background()
	contacts := store.NewContacts(testutil.SetupTestDB(t))
	require.NoError(t, contacts.Create(ctx, newContact("a", domain.PriorityLow, base)))

	_, page, err := contacts.List(ctx, store.ListQuery{Limit: 500, SortBy: "email; DROP TABLE contacts"})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 1, page.Pages)
}

func TestContactUpdateStatusAppendsNote(t *testing.T) {
	ctx := context.Background()
	contacts := store.NewContacts(testutil.SetupTestDB(t))
	c := newContact("ada", domain.PriorityMedium, base)
	require.NoError(t, contacts.Create(ctx, c))

	at := base.Add(time.Hour)
	got, err := contacts.UpdateStatus(ctx, c.ID, store.ContactUpdate{Status: domain.ContactInProgress, Note: "called back", At: at})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactInProgress, got.Status)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, "called back", got.Notes[0].Content)
	assert.Equal(t, "admin", got.Notes[0].CreatedBy)

	got, err = contacts.UpdateStatus(ctx, c.ID, store.ContactUpdate{Status: domain.ContactResolved, At: at})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactResolved, got.Status)
	assert.Len(t, got.Notes, 1)

	_, err = contacts.UpdateStatus(ctx, "missing", store.ContactUpdate{Status: domain.ContactClosed})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMarkDeliveredNeverClearsFlags(t *testing.T) {
	ctx := context.Background()
	contacts := store.NewContacts(testutil.SetupTestDB(t))
	c := newContact("ada", domain.PriorityMedium, base)
	require.NoError(t, contacts.Create(ctx, c))

	first := base.Add(time.Minute)
	require.NoError(t, contacts.MarkDelivered(ctx, c.ID, domain.Delivery{UserSent: true, At: first}))

	got, err := contacts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailSent)
	require.NotNil(t, got.EmailSentAt)
	assert.True(t, first.Equal(*got.EmailSentAt))
	assert.False(t, got.AdminNotified)

	// The user flag keeps its first timestamp.
	second := base.Add(time.Hour)
	require.NoError(t, contacts.MarkDelivered(ctx, c.ID, domain.Delivery{UserSent: true, AdminSent: true, At: second}))
	require.NoError(t, contacts.MarkDelivered(ctx, c.ID, domain.Delivery{At: second.Add(time.Hour)}))

	got, err = contacts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailSent)
	assert.True(t, first.Equal(*got.EmailSentAt))
	assert.True(t, got.AdminNotified)
	require.NotNil(t, got.AdminNotifiedAt)
	assert.True(t, second.Equal(*got.AdminNotifiedAt))
}

func TestContactStats(t *testing.T) {
	ctx := context.Background()
	contacts := store.NewContacts(testutil.SetupTestDB(t))

	empty, err := contacts.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.ContactStats{}, empty)

	a := newContact("a", domain.PriorityUrgent, base)
	b := newContact("b", domain.PriorityHigh, base.Add(time.Minute))
	c := newContact("c", domain.PriorityHigh, base.Add(2*time.Minute))
	for _, rec := range []*domain.Contact{a, b, c} {
		require.NoError(t, contacts.Create(ctx, rec))
	}
	_, err = contacts.UpdateStatus(ctx, c.ID, store.ContactUpdate{Status: domain.ContactResolved, At: base})
	require.NoError(t, err)
	require.NoError(t, contacts.MarkDelivered(ctx, a.ID, domain.Delivery{UserSent: true, AdminSent: true, At: base}))
	require.NoError(t, contacts.MarkDelivered(ctx, b.ID, domain.Delivery{AdminSent: true, At: base}))

	stats, err := contacts.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.ContactStats{
		Total:          3,
		New:            2,
		Resolved:       1,
		UrgentPriority: 1,
		HighPriority:   2,
		EmailsSent:     1,
		AdminNotified:  2,
	}, stats)
}

func TestConsultationUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	consultations := store.NewConsultations(testutil.SetupTestDB(t))
	c := newConsultation("ada", 72, base)
	require.NoError(t, consultations.Create(ctx, c))
	assert.Equal(t, domain.ConsultationPending, c.Status)
	assert.Equal(t, "email", c.PreferredContactMethod)

	when := base.Add(48 * time.Hour)
	notes := "Prepare automation demo"
	got, err := consultations.UpdateStatus(ctx, c.ID, store.ConsultationUpdate{
		Status:            domain.ConsultationScheduled,
		ScheduledDate:     &when,
		ConsultationNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationScheduled, got.Status)
	require.NotNil(t, got.ScheduledDate)
	assert.True(t, when.Equal(*got.ScheduledDate))

	got, err = consultations.UpdateStatus(ctx, c.ID, store.ConsultationUpdate{Status: domain.ConsultationCompleted})
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultationCompleted, got.Status)
	assert.Equal(t, notes, got.ConsultationNotes)
	require.NotNil(t, got.ScheduledDate)
	assert.True(t, when.Equal(*got.ScheduledDate))
}

func TestConsultationStatsAndLeadBuckets(t *testing.T) {
	ctx := context.Background()
	consultations := store.NewConsultations(testutil.SetupTestDB(t))

	buckets, err := consultations.LeadStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, buckets)

	for i, score := range []int{90, 85, 65, 45, 20} {
		c := newConsultation(string(rune('a'+i)), score, base.Add(time.Duration(i)*time.Minute))
		if score >= 80 {
			c.Priority = domain.PriorityHigh
		}
		require.NoError(t, consultations.Create(ctx, c))
	}

	stats, err := consultations.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.Total)
	assert.EqualValues(t, 5, stats.Pending)
	assert.EqualValues(t, 2, stats.HighPriority)
	assert.InDelta(t, 61.0, stats.AverageLeadScore, 0.001)

	buckets, err = consultations.LeadStats(ctx)
	require.NoError(t, err)
	require.Len(t, buckets, 4)
	assert.Equal(t, store.LeadBucket{Category: "hot", Count: 2, AverageScore: 87.5}, buckets[0])
	assert.Equal(t, "warm", buckets[1].Category)
	assert.Equal(t, "cold", buckets[2].Category)
	assert.Equal(t, store.LeadBucket{Category: "very_cold", Count: 1, AverageScore: 20}, buckets[3])
}

func TestConsultationListSortsByScore(t *testing.T) {
	ctx := context.Background()
	consultations := store.NewConsultations(testutil.SetupTestDB(t))
	for i, score := range []int{40, 90, 60} {
		require.NoError(t, consultations.Create(ctx, newConsultation(string(rune('a'+i)), score, base.Add(time.Duration(i)*time.Minute))))
	}

	items, _, err := consultations.List(ctx, store.ListQuery{SortBy: "lead_score", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int{90, 60, 40}, []int{items[0].LeadScore, items[1].LeadScore, items[2].LeadScore})
}

func TestInquiryQuoteIsMarkedSentOnce(t *testing.T) {
	ctx := context.Background()
	inquiries := store.NewServiceInquiries(testutil.SetupTestDB(t))
	in := newInquiry("ada", domain.ServiceAIWebsite, 18000, base)
	require.NoError(t, inquiries.Create(ctx, in))
	assert.Equal(t, "not_sure", in.PreferredStyle)
	assert.Equal(t, domain.StringList{}, in.AdditionalServices)

	zero := 0.0
	got, err := inquiries.UpdateStatus(ctx, in.ID, store.InquiryUpdate{Status: domain.InquiryQuoted, QuoteAmount: &zero, At: base})
	require.NoError(t, err)
	assert.False(t, got.QuoteSent)

	amount := 17500.0
	owner := "sam"
	first := base.Add(time.Hour)
	got, err = inquiries.UpdateStatus(ctx, in.ID, store.InquiryUpdate{
		Status:      domain.InquiryQuoted,
		QuoteAmount: &amount,
		AssignedTo:  &owner,
		Note:        "sent proposal",
		At:          first,
	})
	require.NoError(t, err)
	assert.True(t, got.QuoteSent)
	require.NotNil(t, got.QuoteSentAt)
	assert.True(t, first.Equal(*got.QuoteSentAt))
	require.NotNil(t, got.QuoteAmount)
	assert.InDelta(t, amount, *got.QuoteAmount, 0.001)
	assert.Equal(t, "sam", got.AssignedTo)
	require.Len(t, got.Notes, 1)

	revised := 16000.0
	got, err = inquiries.UpdateStatus(ctx, in.ID, store.InquiryUpdate{Status: domain.InquiryQuoted, QuoteAmount: &revised, At: first.Add(time.Hour)})
	require.NoError(t, err)
	assert.True(t, first.Equal(*got.QuoteSentAt))
	assert.InDelta(t, revised, *got.QuoteAmount, 0.001)
	assert.Equal(t, "sam", got.AssignedTo)
}

func TestInquiryListFiltersByServiceType(t *testing.T) {
	ctx := context.Background()
	inquiries := store.NewServiceInquiries(testutil.SetupTestDB(t))
	require.NoError(t, inquiries.Create(ctx, newInquiry("a", domain.ServiceAIWebsite, 15000, base)))
	require.NoError(t, inquiries.Create(ctx, newInquiry("b", domain.ServiceSmartChatbot, 8000, base.Add(time.Minute))))
	require.NoError(t, inquiries.Create(ctx, newInquiry("c", domain.ServiceAIWebsite, 30000, base.Add(2*time.Minute))))

	items, page, err := inquiries.List(ctx, store.ListQuery{ServiceType: string(domain.ServiceAIWebsite), SortBy: "estimated_value", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "c", items[1].Name)
}

func TestInquiryStatsAndBreakdown(t *testing.T) {
	ctx := context.Background()
	inquiries := store.NewServiceInquiries(testutil.SetupTestDB(t))
	a := newInquiry("a", domain.ServiceAIWebsite, 15000, base)
	b := newInquiry("b", domain.ServiceAIWebsite, 20000, base.Add(time.Minute))
	c := newInquiry("c", domain.ServiceSmartChatbot, 8000, base.Add(2*time.Minute))
	for _, rec := range []*domain.ServiceInquiry{a, b, c} {
		require.NoError(t, inquiries.Create(ctx, rec))
	}
	_, err := inquiries.UpdateStatus(ctx, b.ID, store.InquiryUpdate{Status: domain.InquiryCompleted, At: base})
	require.NoError(t, err)

	stats, err := inquiries.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 2, stats.New)
	assert.EqualValues(t, 1, stats.Completed)
	assert.InDelta(t, 43000, stats.TotalEstimatedValue, 0.001)
	assert.InDelta(t, 14333.33, stats.AverageEstimatedValue, 0.001)
	assert.Zero(t, stats.TotalQuoteAmount)

	rows, err := inquiries.StatsByService(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, store.ServiceBreakdown{
		ServiceType:  domain.ServiceAIWebsite,
		Count:        2,
		TotalValue:   35000,
		AverageValue: 17500,
		Completed:    1,
	}, rows[0])
	assert.Equal(t, domain.ServiceSmartChatbot, rows[1].ServiceType)
}

func TestStoreWrapsDriverErrors(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)
	contacts := store.NewContacts(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contacts" WHERE id = $1`)).
		WillReturnError(assert.AnError)

	_, err := contacts.Get(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsWrapsDriverErrors(t *testing.T) {
	db, mock := testutil.SetupMockDB(t)

	mock.ExpectQuery(`SELECT .*FROM "service_inquiries"`).WillReturnError(assert.AnError)

	_, err := store.NewServiceInquiries(db).Stats(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "service inquiry stats")
}
