package nakama

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"tripeaks/internal/app"
	"tripeaks/internal/domain"
)

// Match messages are JSON documents built as protobuf Structs so the
// label, snapshots and client commands share one encoder.
var jsonOptions = protojson.MarshalOptions{EmitUnpopulated: true}

func marshalFields(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}
	return jsonOptions.Marshal(s)
}

// decodeArgs parses a client payload. An empty payload is an empty object.
func decodeArgs(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if len(data) == 0 {
		return s, nil
	}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	return s, nil
}

func intArg(args *structpb.Struct, name string) (int, bool) {
	v, ok := args.GetFields()[name]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return int(n.NumberValue), true
}

func boolArg(args *structpb.Struct, name string) (bool, bool) {
	v, ok := args.GetFields()[name]
	if !ok {
		return false, false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, false
	}
	return b.BoolValue, true
}

func encodeLabel(owner string, level int, phase app.Phase) (string, error) {
	b, err := marshalFields(map[string]interface{}{
		"game":  "tripeaks",
		"owner": owner,
		"level": level,
		"phase": string(phase),
	})
	return string(b), err
}

// cardFields hides rank and suit of face-down cards.
func cardFields(c domain.Card) map[string]interface{} {
	fields := map[string]interface{}{
		"id":        c.ID,
		"revealed":  c.Revealed,
		"generated": c.Generated,
	}
	if c.Revealed {
		fields["rank"] = int(c.Rank)
		fields["suit"] = int(c.Suit)
		fields["wild"] = c.Kind == domain.Wild
		fields["name"] = c.String()
	}
	return fields
}

func cardList(cards []domain.Card) []interface{} {
	out := make([]interface{}, len(cards))
	for i, c := range cards {
		out[i] = cardFields(c)
	}
	return out
}

func stateFields(st app.RoundState) map[string]interface{} {
	return map[string]interface{}{
		"round":           st.Round,
		"lives":           st.Lives,
		"score":           st.Score,
		"coins":           st.Coins,
		"coins_collected": st.CoinsCollected,
		"high_score":      st.HighScore,
		"time_remaining":  st.TimeRemaining,
		"paused":          st.Paused,
		"outcome":         string(st.Outcome),
	}
}

func encodeSnapshot(level int, snap app.Snapshot) ([]byte, error) {
	slots := make([]interface{}, len(snap.Slots))
	for i, s := range snap.Slots {
		blocking := make([]interface{}, len(s.Blocking))
		for j, id := range s.Blocking {
			blocking[j] = id
		}
		slot := map[string]interface{}{
			"id":         s.ID,
			"x":          s.Pos.X,
			"y":          s.Pos.Y,
			"layer":      s.Pos.Layer,
			"blocking":   blocking,
			"revealable": s.Revealable,
			"card":       nil,
		}
		if s.Card != nil {
			slot["card"] = cardFields(*s.Card)
		}
		slots[i] = slot
	}

	return marshalFields(map[string]interface{}{
		"level": level,
		"phase": string(snap.Phase),
		"state": stateFields(snap.State),
		"bounds": map[string]interface{}{
			"min_x": snap.Bounds.MinX,
			"min_y": snap.Bounds.MinY,
			"max_x": snap.Bounds.MaxX,
			"max_y": snap.Bounds.MaxY,
		},
		"slots":     slots,
		"deck_size": len(snap.Deck),
		"waste":     cardList(snap.Waste),
	})
}

func resultFields(r app.RoundResult) map[string]interface{} {
	return map[string]interface{}{
		"won":             r.Won,
		"round":           r.Round,
		"base_score":      r.BaseScore,
		"deck_bonus":      r.DeckBonus,
		"time_bonus":      r.TimeBonus,
		"total_score":     r.TotalScore,
		"coins_collected": r.CoinsCollected,
		"deck_coins":      r.DeckCoins,
		"time_coins":      r.TimeCoins,
		"total_coins":     r.TotalCoins,
		"extra_life":      r.ExtraLife,
		"new_high_score":  r.NewHighScore,
	}
}

func encodeRoundEnded(r app.RoundResult, receipt string) ([]byte, error) {
	return marshalFields(map[string]interface{}{
		"result":  resultFields(r),
		"receipt": receipt,
	})
}

func encodeError(code int, message string) ([]byte, error) {
	return marshalFields(map[string]interface{}{
		"code":    code,
		"message": message,
	})
}

func encodeEvents(events []app.Event) ([]byte, error) {
	list := make([]interface{}, 0, len(events))
	for _, ev := range events {
		fields, err := eventFields(ev)
		if err != nil {
			return nil, err
		}
		list = append(list, fields)
	}
	return marshalFields(map[string]interface{}{"events": list})
}

func eventFields(ev app.Event) (map[string]interface{}, error) {
	fields := map[string]interface{}{"kind": string(ev.Kind)}
	switch p := ev.Payload.(type) {
	case app.RoundStartedPayload:
		fields["round"] = p.Round
		fields["lives"] = p.Lives
		fields["time_remaining"] = p.TimeRemaining
		fields["slots"] = p.Slots
	case app.CardDealtPayload:
		fields["slot"] = p.SlotID
		fields["card"] = cardFields(p.Card)
	case app.CardRevealedPayload:
		fields["card"] = cardFields(p.Card)
	case app.CardMatchedPayload:
		fields["slot"] = p.SlotID
		fields["card"] = cardFields(p.Card)
		fields["points"] = p.Points
		fields["coins"] = p.Coins
	case app.MoveUndonePayload:
		fields["move"] = string(p.Move)
		fields["slot"] = p.SlotID
		fields["card"] = cardFields(p.Card)
	case app.CardDiscardedPayload:
		fields["card"] = cardFields(p.Card)
	case app.BoardShuffledPayload:
		placements := make([]interface{}, len(p.Placements))
		for i, pl := range p.Placements {
			placements[i] = map[string]interface{}{"slot": pl.SlotID, "card": cardFields(pl.Card)}
		}
		fields["placements"] = placements
	case app.WildCardGeneratedPayload:
		fields["card"] = cardFields(p.Card)
	case app.ExtraCardsAddedPayload:
		fields["cards"] = cardList(p.Cards)
	case app.ExtraTimeAddedPayload:
		fields["seconds"] = p.Seconds
		fields["time_remaining"] = p.TimeRemaining
	default:
		return nil, fmt.Errorf("unknown event payload %T for %s", ev.Payload, ev.Kind)
	}
	return fields, nil
}
