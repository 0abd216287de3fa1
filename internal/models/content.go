package models

import "time"

// Pricing holds the free-text pricing figures shown on the landing page
type Pricing struct {
	Slots       string `json:"slots"`
	FreeSpin    string `json:"freeSpin"`
	WinRate     string `json:"winRate"`
	Gkk99Bonus  string `json:"gkk99Bonus"`
	Gkk777Bonus string `json:"gkk777Bonus"`
}

// SiteContent is the singleton record of editable landing page content
type SiteContent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Gkk99Link   string    `json:"gkk99Link"`
	Gkk777Link  string    `json:"gkk777Link"`
	ViberLink   string    `json:"viberLink"`
	Pricing     Pricing   `json:"pricing"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   string    `json:"updatedBy"`
}

// PricingUpdate carries the optional pricing fields of a partial content update
type PricingUpdate struct {
	Slots       *string `json:"slots,omitempty"`
	FreeSpin    *string `json:"freeSpin,omitempty"`
	WinRate     *string `json:"winRate,omitempty"`
	Gkk99Bonus  *string `json:"gkk99Bonus,omitempty"`
	Gkk777Bonus *string `json:"gkk777Bonus,omitempty"`
}

// UpdateContentRequest represents a partial content update; omitted fields
// keep their previous values
type UpdateContentRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Gkk99Link   *string        `json:"gkk99Link,omitempty"`
	Gkk777Link  *string        `json:"gkk777Link,omitempty"`
	ViberLink   *string        `json:"viberLink,omitempty"`
	Pricing     *PricingUpdate `json:"pricing,omitempty"`
}

// Apply merges the provided fields into content, leaving the rest untouched
func (r *UpdateContentRequest) Apply(content *SiteContent) {
	if r.Title != nil {
		content.Title = *r.Title
	}
	if r.Description != nil {
		content.Description = *r.Description
	}
	if r.Gkk99Link != nil {
		content.Gkk99Link = *r.Gkk99Link
	}
	if r.Gkk777Link != nil {
		content.Gkk777Link = *r.Gkk777Link
	}
	if r.ViberLink != nil {
		content.ViberLink = *r.ViberLink
	}
	if r.Pricing != nil {
		if r.Pricing.Slots != nil {
			content.Pricing.Slots = *r.Pricing.Slots
		}
		if r.Pricing.FreeSpin != nil {
			content.Pricing.FreeSpin = *r.Pricing.FreeSpin
		}
		if r.Pricing.WinRate != nil {
			content.Pricing.WinRate = *r.Pricing.WinRate
		}
		if r.Pricing.Gkk99Bonus != nil {
			content.Pricing.Gkk99Bonus = *r.Pricing.Gkk99Bonus
		}
		if r.Pricing.Gkk777Bonus != nil {
			content.Pricing.Gkk777Bonus = *r.Pricing.Gkk777Bonus
		}
	}
}
