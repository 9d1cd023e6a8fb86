package webhook

import (
	"testing"
	"time"

	"pool-fund/services/ledger/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func fixedVerifier(now time.Time) *Verifier {
	v := NewVerifier(testSecret, 5*time.Minute)
	v.now = func() time.Time { return now }
	return v
}

func TestVerifier_AcceptsValidSignature(t *testing.T) {
	now := time.Unix(1760000000, 0)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	header := Sign(payload, testSecret, now)
	assert.NoError(t, fixedVerifier(now).Verify(payload, header))
}

func TestVerifier_AcceptsAnyMatchingV1(t *testing.T) {
	now := time.Unix(1760000000, 0)
	payload := []byte(`{}`)

	header := Sign(payload, testSecret, now) + ",v1=deadbeef"
	assert.NoError(t, fixedVerifier(now).Verify(payload, header))
}

func TestVerifier_Rejects(t *testing.T) {
	now := time.Unix(1760000000, 0)
	payload := []byte(`{"id":"evt_1"}`)

	cases := map[string]string{
		"missing header":    "",
		"no timestamp":      "v1=abcd",
		"bad timestamp":     "t=abc,v1=abcd",
		"no signature":      "t=1760000000",
		"tampered body":     Sign([]byte(`{"id":"evt_2"}`), testSecret, now),
		"wrong secret":      Sign(payload, "whsec_other", now),
		"too old":           Sign(payload, testSecret, now.Add(-10*time.Minute)),
		"from the future":   Sign(payload, testSecret, now.Add(10*time.Minute)),
		"garbage signature": "t=1760000000,v1=zz",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			err := fixedVerifier(now).Verify(payload, header)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestVerifier_EmptySecretFailsClosed(t *testing.T) {
	payload := []byte(`{}`)
	v := NewVerifier("", time.Minute)

	err := v.Verify(payload, Sign(payload, "", time.Now()))
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseEvent(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"transfer.updated","created":1760000000,"data":{"object":{"id":"tr_1","status":"paid"}}}`)

	event, err := ParseEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, entity.EventTransferUpdated, event.Kind)
	assert.Equal(t, time.Unix(1760000000, 0).UTC(), event.Created)
	assert.JSONEq(t, `{"id":"tr_1","status":"paid"}`, string(event.Object))
}

func TestParseEvent_UnknownTypeStillParses(t *testing.T) {
	event, err := ParseEvent([]byte(`{"id":"evt_9","type":"customer.created","data":{"object":{}}}`))
	require.NoError(t, err)
	assert.Equal(t, entity.EventUnrecognized, event.Kind)
	assert.Equal(t, "customer.created", event.Type)
}

func TestParseEvent_Malformed(t *testing.T) {
	_, err := ParseEvent([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformedEvent)

	_, err = ParseEvent([]byte(`{"type":"payment_intent.succeeded"}`))
	assert.ErrorIs(t, err, ErrMalformedEvent)
}
