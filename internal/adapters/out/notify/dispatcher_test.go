package notify_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"pharmacy/internal/adapters/out/notify"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/request"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingChannel captures sent messages and signals each delivery.
type recordingChannel struct {
	mu       sync.Mutex
	messages []recordedMessage
	sent     chan struct{}
	fail     bool
}

type recordedMessage struct {
	contact ports.Contact
	subject string
	body    string
}

func newRecordingChannel() *recordingChannel {
	return &recordingChannel{sent: make(chan struct{}, 16)}
}

func (c *recordingChannel) Name() string { return "recording" }

func (c *recordingChannel) Send(_ context.Context, contact ports.Contact, subject, body string) error {
	defer func() { c.sent <- struct{}{} }()
	if c.fail {
		return assert.AnError
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, recordedMessage{contact: contact, subject: subject, body: body})
	return nil
}

func (c *recordingChannel) waitForSend(t *testing.T) {
	t.Helper()
	select {
	case <-c.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification delivery")
	}
}

func (c *recordingChannel) recorded() []recordedMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]recordedMessage(nil), c.messages...)
}

// stubDirectory returns a fixed contact for one known patient.
type stubDirectory struct {
	knownID kernel.UUID
	contact ports.Contact
	looked  chan struct{}
}

func newStubDirectory(knownID kernel.UUID, contact ports.Contact) *stubDirectory {
	return &stubDirectory{knownID: knownID, contact: contact, looked: make(chan struct{}, 16)}
}

func (d *stubDirectory) LookupContact(_ context.Context, patientID kernel.UUID) (ports.Contact, error) {
	defer func() { d.looked <- struct{}{} }()
	if !patientID.IsEqual(d.knownID) {
		return ports.Contact{}, errs.NewObjectNotFoundError("patient", patientID.String())
	}
	return d.contact, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func pendingRequest(t *testing.T, patientID kernel.UUID) *request.Request {
	t.Helper()
	aggregate, err := request.NewRequest(
		kernel.NewUUID(), patientID, kernel.NewUUID(),
		"Amoxicillin 500mg", 2, request.UrgencyNormal, false, "", nil,
	)
	require.NoError(t, err)
	return aggregate
}

func TestDispatcher_RequestStatusChanged_DeliversToPatient(t *testing.T) {
	patientID := kernel.NewUUID()
	contact := ports.Contact{Name: "Jordan Smith", Email: "jordan@example.com"}
	directory := newStubDirectory(patientID, contact)
	channel := newRecordingChannel()

	dispatcher := notify.NewDispatcher(directory, []ports.NotificationChannel{channel}, ports.Contact{}, testLogger())

	dispatcher.RequestStatusChanged(context.Background(), pendingRequest(t, patientID))
	channel.waitForSend(t)

	messages := channel.recorded()
	require.Len(t, messages, 1)
	assert.Equal(t, contact, messages[0].contact)
	assert.Contains(t, messages[0].subject, "Amoxicillin 500mg")
	assert.Contains(t, messages[0].body, "quantity 2")
}

func TestDispatcher_RequestCreated_ConfirmsReceipt(t *testing.T) {
	patientID := kernel.NewUUID()
	contact := ports.Contact{Name: "Jordan Smith", Email: "jordan@example.com"}
	directory := newStubDirectory(patientID, contact)
	channel := newRecordingChannel()

	dispatcher := notify.NewDispatcher(directory, []ports.NotificationChannel{channel}, ports.Contact{}, testLogger())

	dispatcher.RequestCreated(context.Background(), pendingRequest(t, patientID))
	channel.waitForSend(t)

	messages := channel.recorded()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].subject, "Request received")
	assert.Contains(t, messages[0].body, "Amoxicillin 500mg")
}

func TestDispatcher_RequestCancelled_ConfirmsWithdrawal(t *testing.T) {
	patientID := kernel.NewUUID()
	contact := ports.Contact{Name: "Jordan Smith", Email: "jordan@example.com"}
	directory := newStubDirectory(patientID, contact)
	channel := newRecordingChannel()

	dispatcher := notify.NewDispatcher(directory, []ports.NotificationChannel{channel}, ports.Contact{}, testLogger())

	dispatcher.RequestCancelled(context.Background(), pendingRequest(t, patientID))
	channel.waitForSend(t)

	messages := channel.recorded()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].subject, "cancelled")
}

func TestDispatcher_UnknownPatient_SkipsSilently(t *testing.T) {
	directory := newStubDirectory(kernel.NewUUID(), ports.Contact{})
	channel := newRecordingChannel()

	dispatcher := notify.NewDispatcher(directory, []ports.NotificationChannel{channel}, ports.Contact{}, testLogger())

	dispatcher.RequestStatusChanged(context.Background(), pendingRequest(t, kernel.NewUUID()))

	select {
	case <-directory.looked:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for contact lookup")
	}
	assert.Empty(t, channel.recorded(), "no delivery should happen for unknown patients")
}

func TestDispatcher_ChannelFailure_DoesNotPanicOrPropagate(t *testing.T) {
	patientID := kernel.NewUUID()
	directory := newStubDirectory(patientID, ports.Contact{Name: "Jordan", Email: "jordan@example.com"})
	failing := newRecordingChannel()
	failing.fail = true
	working := newRecordingChannel()

	dispatcher := notify.NewDispatcher(
		directory,
		[]ports.NotificationChannel{failing, working},
		ports.Contact{},
		testLogger(),
	)

	dispatcher.RequestStatusChanged(context.Background(), pendingRequest(t, patientID))

	failing.waitForSend(t)
	working.waitForSend(t)
	assert.Len(t, working.recorded(), 1, "failure on one channel must not stop the others")
}

func TestDispatcher_LowStock_GoesToOpsContact(t *testing.T) {
	ops := ports.Contact{Name: "Pharmacy Ops", Email: "ops@example.com"}
	directory := newStubDirectory(kernel.NewUUID(), ports.Contact{})
	channel := newRecordingChannel()

	dispatcher := notify.NewDispatcher(directory, []ports.NotificationChannel{channel}, ops, testLogger())

	unitPrice, err := kernel.NewMoneyFromFloat(5.99)
	require.NoError(t, err)
	item, err := inventory.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Insulin 100IU", "hormone", "injection",
		2, unitPrice, 5,
	)
	require.NoError(t, err)

	dispatcher.LowStock(context.Background(), []*inventory.Item{item})
	channel.waitForSend(t)

	messages := channel.recorded()
	require.Len(t, messages, 1)
	assert.Equal(t, ops, messages[0].contact)
	assert.Contains(t, messages[0].body, "Insulin 100IU: 2 left (threshold 5)")
}

func TestDispatcher_LowStock_EmptyListIsNoOp(t *testing.T) {
	channel := newRecordingChannel()
	dispatcher := notify.NewDispatcher(
		newStubDirectory(kernel.NewUUID(), ports.Contact{}),
		[]ports.NotificationChannel{channel},
		ports.Contact{Email: "ops@example.com"},
		testLogger(),
	)

	dispatcher.LowStock(context.Background(), nil)

	select {
	case <-channel.sent:
		t.Fatal("no delivery expected for an empty report")
	case <-time.After(100 * time.Millisecond):
	}
}
