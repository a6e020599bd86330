package catalog

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PricingModel is how an offer charges.
type PricingModel string

const (
	PricingOneTime      PricingModel = "one_time"
	PricingSubscription PricingModel = "subscription"
	PricingHybrid       PricingModel = "hybrid"
)

// Categories a vendor can list services under.
var Categories = []string{
	"Inbound Call Vendor",
	"Marketer/Media Buyer",
	"Social Media Manager",
	"Coach",
	"Developer",
}

// Offer is a service listed by a vendor.
type Offer struct {
	ID             string       `json:"id"`
	VendorID       string       `json:"vendor_id"`
	VendorName     string       `json:"vendor_name"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	PricingModel   PricingModel `json:"pricing_model"`
	PriceCents     int64        `json:"price_cents"`
	SetupFeeCents  int64        `json:"setup_fee_cents,omitempty"`
	TurnaroundDays int          `json:"turnaround_days"`
	Rating         float64      `json:"rating"`
	ImageURL       string       `json:"image_url,omitempty"`
	VideoURL       string       `json:"video_url,omitempty"`
	Keywords       []string     `json:"keywords,omitempty"`
}

// Message is one entry in a conversation. System messages announce
// order events (funding, delivery) rather than user speech.
type Message struct {
	ID       string    `json:"id"`
	SenderID string    `json:"sender_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
	System   bool      `json:"system,omitempty"`
}

// Conversation is a buyer/vendor thread, optionally pinned to an offer.
type Conversation struct {
	ID            string    `json:"id"`
	Participants  []string  `json:"participants"`
	LastMessage   string    `json:"last_message"`
	UpdatedAt     time.Time `json:"updated_at"`
	ActiveOrderID string    `json:"active_order_id,omitempty"`
	OfferTitle    string    `json:"offer_title,omitempty"`
	Messages      []Message `json:"messages"`
}

var ErrInvalidOffer = errors.New("catalog: offer missing required fields")

// Store is the in-memory offer and conversation catalog. Listings are
// mock data by design: the marketplace core under specification here
// has no persisted business records.
type Store struct {
	mu            sync.RWMutex
	offers        []Offer
	conversations []Conversation
}

func NewStore() *Store {
	return &Store{}
}

// Offers returns all listed offers, newest last.
func (s *Store) Offers() []Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Offer(nil), s.offers...)
}

// OffersByVendor returns the offers listed by one vendor.
func (s *Store) OffersByVendor(vendorID string) []Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Offer
	for _, o := range s.offers {
		if o.VendorID == vendorID {
			out = append(out, o)
		}
	}
	return out
}

// AddOffer lists a new offer and returns it with its assigned id.
func (s *Store) AddOffer(o Offer) (Offer, error) {
	if o.VendorID == "" || o.Title == "" || o.Category == "" {
		return Offer{}, ErrInvalidOffer
	}
	if o.PricingModel == "" {
		o.PricingModel = PricingOneTime
	}
	o.ID = "offer_" + uuid.NewString()

	s.mu.Lock()
	s.offers = append(s.offers, o)
	s.mu.Unlock()
	return o, nil
}

// ConversationsFor returns the threads the given participant is in.
func (s *Store) ConversationsFor(participantID string) []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Conversation
	for _, c := range s.conversations {
		for _, p := range c.Participants {
			if p == participantID {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
