package notification

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentshive/training-site/internal/models"
	"github.com/talentshive/training-site/internal/worker"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func newTestNotifier(t *testing.T, sender Sender) *Notifier {
	t.Helper()
	renderer, err := NewRenderer("TalentsHive", "https://talentshive.com")
	require.NoError(t, err)
	return NewNotifier(sender, renderer, Addresses{
		From:       "noreply@talentshive.com",
		Admissions: "admissions@talentshive.com",
		Contact:    "info@talentshive.com",
	}, zerolog.Nop())
}

func testApplication() *models.Application {
	return &models.Application{
		ID:                "app-1",
		FirstName:         "Ada",
		LastName:          "Obi",
		Email:             "ada@example.com",
		Phone:             "08012345678",
		Course:            "Cybersecurity",
		Plan:              "professional",
		StartDate:         "2025-01-15",
		Experience:        "beginner",
		Motivation:        "<script>alert(1)</script> I want to defend networks for a living.",
		PreviousEducation: "BSc Physics",
		Expectations:      "Hands-on labs and mentorship please",
		Status:            "pending",
		CreatedAt:         time.Now(),
	}
}

func TestNotifyApplicationSendsBothEmails(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(t, sender)

	assert.True(t, n.NotifyApplication(context.Background(), testApplication()))
	require.Len(t, sender.sent, 2)

	admin := sender.sent[0]
	assert.Equal(t, KindApplicationNotification, admin.Kind)
	assert.Equal(t, "app-1", admin.RecordID)
	assert.Equal(t, "admissions@talentshive.com", admin.To)
	assert.Equal(t, "noreply@talentshive.com", admin.From)
	assert.Equal(t, "New Course Application - Cybersecurity - Ada Obi", admin.Subject)
	assert.Contains(t, admin.HTML, "Application ID: app-1")
	assert.NotContains(t, admin.HTML, "<script>")
	assert.Contains(t, admin.HTML, "&lt;script&gt;")
	assert.NotContains(t, admin.HTML, "Work Experience")
	assert.Contains(t, admin.HTML, "Lagos | Abuja | Online")

	confirmation := sender.sent[1]
	assert.Equal(t, KindApplicationConfirmation, confirmation.Kind)
	assert.Equal(t, "ada@example.com", confirmation.To)
	assert.Equal(t, "admissions@talentshive.com", confirmation.From)
	assert.Equal(t, "Application Received - Cybersecurity Course", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "Hi Ada,")
	assert.Contains(t, confirmation.HTML, "https://talentshive.com")
}

func TestNotifyApplicationIncludesWorkExperience(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(t, sender)

	app := testApplication()
	work := "Two years of helpdesk support"
	app.WorkExperience = &work

	n.NotifyApplication(context.Background(), app)
	require.NotEmpty(t, sender.sent)
	assert.Contains(t, sender.sent[0].HTML, "Work Experience")
	assert.Contains(t, sender.sent[0].HTML, work)
}

func TestNotifyContact(t *testing.T) {
	sender := &fakeSender{}
	n := newTestNotifier(t, sender)

	phone := "08099999999"
	msg := &models.ContactMessage{
		ID:        "contact-1",
		FirstName: "Ngozi",
		LastName:  "Eze",
		Email:     "ngozi@example.com",
		Phone:     &phone,
		Message:   "When is the next cohort?",
		Status:    "new",
	}

	assert.True(t, n.NotifyContact(context.Background(), msg))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "info@talentshive.com", sender.sent[0].To)
	assert.Equal(t, "New Contact Message - Ngozi Eze", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, phone)
	assert.NotContains(t, sender.sent[0].HTML, "Course Interest")
}

func TestNotifierReportsFailure(t *testing.T) {
	n := newTestNotifier(t, NewLogSender(zerolog.Nop()))
	assert.False(t, n.NotifyApplication(context.Background(), testApplication()))

	failing := newTestNotifier(t, &fakeSender{err: errors.New("provider down")})
	assert.False(t, failing.NotifyContact(context.Background(), &models.ContactMessage{ID: "c", FirstName: "A", LastName: "B"}))
}

func TestHandleLeadCreated(t *testing.T) {
	sender := &fakeSender{err: errors.New("provider down")}
	n := newTestNotifier(t, sender)

	err := n.HandleLeadCreated(context.Background(), models.LeadCreatedEvent{
		Type:        models.EventApplicationCreated,
		Application: testApplication(),
	})
	assert.NoError(t, err)
	assert.Len(t, sender.sent, 2)

	err = n.HandleLeadCreated(context.Background(), models.LeadCreatedEvent{Type: models.EventContactCreated})
	assert.Error(t, err)
}

type fakeStore struct {
	keys []string
	err  error
}

func (s *fakeStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	s.keys = append(s.keys, key)
	return s.err
}

func TestArchiveSender(t *testing.T) {
	msg := Message{Kind: KindContactNotification, RecordID: "contact-1", HTML: "<p>hi</p>"}

	store := &fakeStore{}
	sender := NewArchiveSender(&fakeSender{}, store, zerolog.Nop())
	require.NoError(t, sender.Send(context.Background(), msg))
	assert.Equal(t, []string{"contact_notification/contact-1.html"}, store.keys)

	undelivered := NewArchiveSender(NewLogSender(zerolog.Nop()), &fakeStore{err: errors.New("bucket gone")}, zerolog.Nop())
	assert.ErrorIs(t, undelivered.Send(context.Background(), msg), ErrNotConfigured)
}

type fakeMailClient struct {
	email  *mail.SGMailV3
	status int
}

func (c *fakeMailClient) SendWithContext(_ context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	c.email = email
	return &rest.Response{StatusCode: c.status, Body: "{}"}, nil
}

func TestSendGridSender(t *testing.T) {
	client := &fakeMailClient{status: 202}
	sender := &SendGridSender{client: client, fromName: "TalentsHive", logger: zerolog.Nop()}

	err := sender.Send(context.Background(), Message{
		To:      "ada@example.com",
		From:    "admissions@talentshive.com",
		Subject: "Application Received - Cybersecurity Course",
		HTML:    "<p>thanks</p>",
	})
	require.NoError(t, err)
	require.NotNil(t, client.email)
	assert.Equal(t, "admissions@talentshive.com", client.email.From.Address)
	assert.Equal(t, "Application Received - Cybersecurity Course", client.email.Subject)
	require.Len(t, client.email.Personalizations, 1)
	assert.Equal(t, "ada@example.com", client.email.Personalizations[0].To[0].Address)
	require.NotEmpty(t, client.email.Content)
	assert.Equal(t, "<p>thanks</p>", client.email.Content[len(client.email.Content)-1].Value)

	client.status = 401
	assert.Error(t, sender.Send(context.Background(), Message{To: "a@b.c", From: "d@e.f"}))
}

type countingNotifier struct {
	mu           sync.Mutex
	applications []string
	contacts     []string
}

func (n *countingNotifier) NotifyApplication(_ context.Context, app *models.Application) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.applications = append(n.applications, app.ID)
	return true
}

func (n *countingNotifier) NotifyContact(_ context.Context, msg *models.ContactMessage) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.contacts = append(n.contacts, msg.ID)
	return false
}

func TestPoolDispatcher(t *testing.T) {
	pool := worker.NewWorkerPool(2, 10, zerolog.Nop())
	pool.Start()

	notifier := &countingNotifier{}
	d := NewPoolDispatcher(pool, notifier, time.Second, zerolog.Nop())
	d.ApplicationCreated(&models.Application{ID: "app-1"})
	d.ContactCreated(&models.ContactMessage{ID: "contact-1"})

	pool.Stop()
	assert.Equal(t, []string{"app-1"}, notifier.applications)
	assert.Equal(t, []string{"contact-1"}, notifier.contacts)
}

type fakePublisher struct {
	bodies [][]byte
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, body []byte) error {
	p.bodies = append(p.bodies, body)
	return p.err
}

type recordingDispatcher struct {
	applications []string
	contacts     []string
}

func (d *recordingDispatcher) ApplicationCreated(app *models.Application) {
	d.applications = append(d.applications, app.ID)
}

func (d *recordingDispatcher) ContactCreated(msg *models.ContactMessage) {
	d.contacts = append(d.contacts, msg.ID)
}

func TestQueueDispatcherPublishes(t *testing.T) {
	publisher := &fakePublisher{}
	fallback := &recordingDispatcher{}
	d := NewQueueDispatcher(publisher, fallback, zerolog.Nop())

	d.ApplicationCreated(&models.Application{ID: "app-1"})
	require.Len(t, publisher.bodies, 1)
	assert.Empty(t, fallback.applications)

	var event models.LeadCreatedEvent
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, models.EventApplicationCreated, event.Type)
	require.NotNil(t, event.Application)
	assert.Equal(t, "app-1", event.Application.ID)
	assert.Nil(t, event.ContactMessage)
	assert.True(t, strings.Contains(string(publisher.bodies[0]), `"type":"application.created"`))
}

func TestQueueDispatcherFallsBack(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("channel closed")}
	fallback := &recordingDispatcher{}
	d := NewQueueDispatcher(publisher, fallback, zerolog.Nop())

	d.ApplicationCreated(&models.Application{ID: "app-1"})
	d.ContactCreated(&models.ContactMessage{ID: "contact-1"})

	assert.Equal(t, []string{"app-1"}, fallback.applications)
	assert.Equal(t, []string{"contact-1"}, fallback.contacts)
}
