package service

import (
	"fmt"
	"strings"

	consolerepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/consoles/repository"
	"github.com/yuliitezarygml/tg-bor-arend/internal/domains/rentals/repository"
	userrepo "github.com/yuliitezarygml/tg-bor-arend/internal/domains/users/repository"
)

const (
	urgencyInfo     = "info"
	urgencyWarning  = "warning"
	urgencyHigh     = "high"
	urgencyCritical = "critical"
)

// Tier is one remaining-time reminder window. Windows are disjoint, so at most
// one tier can match a rental per evaluation; the per-rental one-shot flag
// keeps a matched tier from ever firing twice.
type Tier struct {
	Name     string
	Urgency  string
	TimeText string

	// Window over remaining hours: lower exclusive, upper inclusive.
	lower float64
	upper float64

	sent func(repository.Rental) bool
	mark func(*repository.Rental)
}

// Tiers in descending order of remaining time: the two-hour tier is checked
// before the one-hour tier and so on down to the critical ten-minute tier.
var reminderTiers = []Tier{
	{
		Name: "2_hours", Urgency: urgencyInfo, TimeText: "2 hours",
		lower: 1.5, upper: 2.0,
		sent: func(r repository.Rental) bool { return r.Reminder2hSent },
		mark: func(r *repository.Rental) { r.Reminder2hSent = true },
	},
	{
		Name: "1_hour", Urgency: urgencyWarning, TimeText: "1 hour",
		lower: 0.5, upper: 1.0,
		sent: func(r repository.Rental) bool { return r.Reminder1hSent },
		mark: func(r *repository.Rental) { r.Reminder1hSent = true },
	},
	{
		Name: "30_minutes", Urgency: urgencyHigh, TimeText: "30 minutes",
		lower: 0.25, upper: 0.5,
		sent: func(r repository.Rental) bool { return r.Reminder30mSent },
		mark: func(r *repository.Rental) { r.Reminder30mSent = true },
	},
	{
		Name: "10_minutes", Urgency: urgencyCritical, TimeText: "10 minutes",
		lower: 0.083, upper: 0.17,
		sent: func(r repository.Rental) bool { return r.Reminder10mSent },
		mark: func(r *repository.Rental) { r.Reminder10mSent = true },
	},
}

func (t Tier) inWindow(remaining float64) bool {
	return remaining > t.lower && remaining <= t.upper
}

// StageReminder evaluates the reminder tiers for an active rental given the
// remaining hours until auto-expiry. When a not-yet-sent tier matches, it
// returns the tier and the rental with that tier's flag set. A window the
// process slept through is skipped forever, never fired late.
func StageReminder(r repository.Rental, remaining float64, criticalEnabled bool) (Tier, repository.Rental, bool) {
	for _, tier := range reminderTiers {
		if !tier.inWindow(remaining) {
			continue
		}

		if tier.sent(r) {
			return Tier{}, r, false
		}

		if tier.Urgency == urgencyCritical && !criticalEnabled {
			return Tier{}, r, false
		}

		tier.mark(&r)

		return tier, r, true
	}

	return Tier{}, r, false
}

const criticalAlertHeader = "🚨🚨🚨 CRITICAL NOTIFICATION 🚨🚨🚨"

// Messages renders the user-facing texts for a fired tier. The critical tier
// deliberately produces two messages: an alert header, then the details.
func (t Tier) Messages(consoleName string, currentCost int, rentalID string) []string {
	var b strings.Builder

	switch t.Urgency {
	case urgencyCritical:
		b.WriteString("🚨 *LAST MINUTES OF YOUR RENTAL* 🚨\n\n")
		fmt.Fprintf(&b, "🎮 Console: *%s*\n", consoleName)
		fmt.Fprintf(&b, "⏳ Time left: *%s*\n\n", t.TimeText)
		b.WriteString("🚨 *END YOUR RENTAL NOW!*\n")
		fmt.Fprintf(&b, "💰 Current cost: %d lei\n\n", currentCost)
	case urgencyHigh:
		b.WriteString("⚠️ *ATTENTION! Rental ending soon*\n\n")
		fmt.Fprintf(&b, "🎮 Console: %s\n", consoleName)
		fmt.Fprintf(&b, "⏳ Time left: *%s*\n\n", t.TimeText)
		b.WriteString("⚡ Consider ending the rental early\n")
		fmt.Fprintf(&b, "💰 Current cost: %d lei\n\n", currentCost)
	case urgencyWarning:
		b.WriteString("🕐 *Rental ending soon*\n\n")
		fmt.Fprintf(&b, "🎮 Console: %s\n", consoleName)
		fmt.Fprintf(&b, "⏳ Time left: %s\n\n", t.TimeText)
	default:
		b.WriteString("⏰ *Rental reminder*\n\n")
		fmt.Fprintf(&b, "🎮 Console: %s\n", consoleName)
		fmt.Fprintf(&b, "⏳ Time left: %s\n\n", t.TimeText)
	}

	b.WriteString("💡 *How to finish:*\n")
	fmt.Fprintf(&b, "• Command: `/end %s`\n", rentalID)
	b.WriteString("• Button in \"📊 My account\"\n")
	b.WriteString("• Admin web panel\n\n")
	b.WriteString("📞 Need help? Message the administrator")

	if t.Urgency == urgencyCritical {
		return []string{criticalAlertHeader, b.String()}
	}

	return []string{b.String()}
}

func autoEndUserMessage(consoleName string, billedHours, cost int) string {
	var b strings.Builder

	b.WriteString("⏰ *Rental ended automatically*\n\n")
	fmt.Fprintf(&b, "🎮 Console: %s\n", consoleName)
	fmt.Fprintf(&b, "⏰ Duration: %d hours\n", billedHours)
	fmt.Fprintf(&b, "💰 Amount due: %d lei\n\n", cost)
	b.WriteString("🕒 The rental was ended automatically because the maximum time was reached.\n")
	b.WriteString("Thank you for using our service!")

	return b.String()
}

func autoEndAdminMessage(u userrepo.User, c consolerepo.Console, billedHours, cost int) string {
	phone := u.PhoneNumber
	if phone == "" {
		phone = "not provided"
	}

	var b strings.Builder

	b.WriteString("⏰ *Rental ended automatically*\n\n")
	fmt.Fprintf(&b, "👤 %s\n", u.DisplayName())
	fmt.Fprintf(&b, "📱 %s\n", phone)
	fmt.Fprintf(&b, "🎮 %s\n", c.Name)
	fmt.Fprintf(&b, "⏰ %d hours\n", billedHours)
	fmt.Fprintf(&b, "💰 %d lei\n", cost)
	b.WriteString("🤖 Ended by the system (time limit exceeded)")

	return b.String()
}
