package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

const (
	ReceiptIssuer = "tripeaks"
	receiptTTL    = 24 * time.Hour
)

// Receipt is the verified content of a signed round result.
type Receipt struct {
	ID         string
	UserID     string
	Round      int
	Won        bool
	TotalScore int64
	TotalCoins int64
	IssuedAt   time.Time
}

// ResultSigner issues HS256 tokens that let a client prove a round result
// to another service.
type ResultSigner struct {
	secret []byte
	now    func() time.Time
}

func NewResultSigner(secret string) *ResultSigner {
	return &ResultSigner{secret: []byte(secret), now: time.Now}
}

// Sign returns a token for the result of userID's round.
func (s *ResultSigner) Sign(userID string, r RoundResult) (string, error) {
	if s == nil {
		return "", fmt.Errorf("result signer is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("receipt secret is not configured")
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":   ReceiptIssuer,
		"sub":   userID,
		"jti":   uuid.New().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(receiptTTL).Unix(),
		"round": r.Round,
		"won":   r.Won,
		"score": r.TotalScore,
		"coins": r.TotalCoins,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token and returns its content.
func (s *ResultSigner) Verify(tokenString string) (Receipt, error) {
	if s == nil || len(s.secret) == 0 {
		return Receipt{}, fmt.Errorf("receipt secret is not configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("invalid receipt: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Receipt{}, fmt.Errorf("invalid receipt")
	}
	if iss, _ := claims["iss"].(string); iss != ReceiptIssuer {
		return Receipt{}, fmt.Errorf("unexpected issuer %q", iss)
	}

	// MapClaims decodes every number as float64.
	num := func(name string) float64 {
		v, _ := claims[name].(float64)
		return v
	}
	r := Receipt{
		Round:      int(num("round")),
		TotalScore: int64(num("score")),
		TotalCoins: int64(num("coins")),
		IssuedAt:   time.Unix(int64(num("iat")), 0),
	}
	r.ID, _ = claims["jti"].(string)
	r.UserID, _ = claims["sub"].(string)
	r.Won, _ = claims["won"].(bool)
	return r, nil
}
