package nakama

import (
	"testing"

	"tripeaks/internal/app"
	"tripeaks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLabel(t *testing.T) {
	label, err := encodeLabel("user-1", 3, app.PhasePlaying)
	require.NoError(t, err)
	assert.JSONEq(t, `{"game":"tripeaks","owner":"user-1","level":3,"phase":"playing"}`, label)
}

func TestDecodeArgs(t *testing.T) {
	args, err := decodeArgs(nil)
	require.NoError(t, err)
	_, ok := intArg(args, "slot")
	assert.False(t, ok)

	args, err = decodeArgs([]byte(`{"slot":12,"paused":true,"name":"x"}`))
	require.NoError(t, err)
	slot, ok := intArg(args, "slot")
	assert.True(t, ok)
	assert.Equal(t, 12, slot)
	paused, ok := boolArg(args, "paused")
	assert.True(t, ok)
	assert.True(t, paused)

	_, ok = intArg(args, "name")
	assert.False(t, ok, "strings are not slot ids")
	_, ok = boolArg(args, "slot")
	assert.False(t, ok)

	_, err = decodeArgs([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestCardFieldsHidesFaceDownCards(t *testing.T) {
	card := domain.Card{ID: 4, Rank: domain.Queen, Suit: domain.Hearts}

	hidden := cardFields(card)
	assert.Equal(t, map[string]interface{}{"id": 4, "revealed": false, "generated": false}, hidden)

	card.Revealed = true
	shown := cardFields(card)
	assert.Equal(t, int(domain.Queen), shown["rank"])
	assert.Equal(t, int(domain.Hearts), shown["suit"])
	assert.Equal(t, false, shown["wild"])
	assert.Equal(t, card.String(), shown["name"])
}

func TestEncodeEvents(t *testing.T) {
	card := domain.Card{ID: 1, Rank: domain.Ace, Suit: domain.Spades, Revealed: true}
	events := []app.Event{
		{Kind: app.EventRoundStarted, Payload: app.RoundStartedPayload{Round: 1, TimeRemaining: 60, Slots: 28}},
		{Kind: app.EventCardMatched, Payload: app.CardMatchedPayload{SlotID: 2, Card: card, Points: 100, Coins: 1}},
		{Kind: app.EventMoveUndone, Payload: app.MoveUndonePayload{Move: app.MoveRevealFromDeck, SlotID: -1, Card: card}},
		{Kind: app.EventBoardShuffled, Payload: app.BoardShuffledPayload{Placements: []app.CardDealtPayload{{SlotID: 0, Card: card}}}},
		{Kind: app.EventExtraCardsAdded, Payload: app.ExtraCardsAddedPayload{Cards: []domain.Card{card}}},
		{Kind: app.EventExtraTimeAdded, Payload: app.ExtraTimeAddedPayload{Seconds: 15, TimeRemaining: 40}},
	}

	data, err := encodeEvents(events)
	require.NoError(t, err)
	got := decodeJSON(t, data)["events"].([]interface{})
	require.Len(t, got, len(events))
	matched := got[1].(map[string]interface{})
	assert.Equal(t, "card_matched", matched["kind"])
	assert.EqualValues(t, 100, matched["points"])
	undone := got[2].(map[string]interface{})
	assert.EqualValues(t, -1, undone["slot"])
}

func TestEncodeEventsRejectsUnknownPayload(t *testing.T) {
	_, err := encodeEvents([]app.Event{{Kind: app.EventCardDealt, Payload: "card"}})
	assert.Error(t, err)
}
