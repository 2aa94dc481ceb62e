package router

import (
	"fmt"
	"strings"

	"github.com/closetware/landlord/internal/config"
	"github.com/closetware/landlord/internal/domain/economy"
	"github.com/closetware/landlord/internal/port/notifier"
)

const embedColor = 0xF1C40F

func plain(format string, args ...any) *notifier.Message {
	return &notifier.Message{Content: fmt.Sprintf(format, args...)}
}

func usage(u string) *notifier.Message {
	return plain("Usage: %s", u)
}

func genericFailure() *notifier.Message {
	return plain("Something went wrong in the back office. Try again in a bit.")
}

func renderWork(res *economy.WorkResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("%s, you %s and earned $%d. Balance: $%d.",
		res.Name, res.Job, res.Earned, res.Balance)
}

func renderGamble(res *economy.GambleResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	verdict := fmt.Sprintf("you lost $%d", res.Amount)
	if res.Win {
		verdict = fmt.Sprintf("you won $%d", res.Amount)
	}
	return plain("The coin landed on **%s**. %s, %s! Balance: $%d (%d gambles left this hour).",
		strings.ToUpper(string(res.Drawn)), res.Name, verdict, res.Balance, res.Remaining)
}

func renderSlots(res *economy.SlotsResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}

	reels := fmt.Sprintf(":%s: :%s: :%s:", res.Symbols[0], res.Symbols[1], res.Symbols[2])
	switch {
	case res.Jackpot:
		return plain("%s\n**JACKPOT!** %s, you won $%d! Balance: $%d (%d rolls left this hour).",
			reels, res.Name, res.Payout, res.Balance, res.Remaining)
	case res.Win:
		return plain("%s\nThree of a kind! %s, you won $%d. Balance: $%d (%d rolls left this hour).",
			reels, res.Name, res.Payout, res.Balance, res.Remaining)
	default:
		return plain("%s\nNo luck, %s. You lost $%d. Balance: $%d (%d rolls left this hour).",
			reels, res.Name, -res.Payout, res.Balance, res.Remaining)
	}
}

func renderPurchase(res *economy.PurchaseResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("%s bought %.3f ft² for $%d. Closet: %.3f ft², balance $%d.",
		res.Name, res.GainedFt, res.Cost, res.FloorSpace, res.Balance)
}

func renderRole(res *economy.RoleResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	if res.GrantFailed {
		return plain("%s paid $%d for **%s**, but the title didn't stick. The landlord has been notified.",
			res.Name, res.Price, res.Role)
	}
	return plain("%s is now **%s**! ($%d, balance $%d)",
		res.Name, res.Role, res.Price, res.Balance)
}

func renderMoveIn(res *economy.MoveInResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("Welcome to the closet, %s! Try not to touch the walls.", res.Name)
}

func renderEvict(res *economy.EvictResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("%s has been evicted. Their corner is available again.", res.Name)
}

func renderAdjust(res *economy.AdjustResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("%s: %.3f ft² → %.3f ft² (%+.3f).", res.Name, res.OldFt, res.NewFt, res.Delta)
}

func renderSetFloor(res *economy.SetFloorResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("%s's closet resized: %.3f ft² → %.3f ft².", res.Name, res.OldFt, res.NewFt)
}

func renderSetBalance(res *economy.SetBalanceResult) *notifier.Message {
	if res.Rejection != nil {
		return plain("%s", res.Rejection.Reason)
	}
	return plain("%s's balance set: $%d → $%d.", res.Name, res.OldBalance, res.NewBalance)
}

func renderCompliance(res *economy.ComplianceResult, landlordName string) *notifier.Message {
	prefix := ""
	if res.Created {
		prefix = fmt.Sprintf("%s didn't even live here. They do now. ", res.Name)
	}
	return plain("%sOnly %s gives orders around here. %s loses %.3f ft² for the insolence (now %.3f ft²).",
		prefix, landlordName, res.Name, res.Penalty, res.FloorSpace)
}

func renderStudy(res *economy.StudyResult) *notifier.Message {
	if len(res.Mentions) == 0 {
		return plain("Who are you trying to make study, %s? Maybe you should go study!", res.Name)
	}

	var b strings.Builder
	if len(res.Mentions) > 1 {
		fmt.Fprintf(&b, "Hey guys! **%s** is telling you all to go study!", res.Name)
	} else {
		fmt.Fprintf(&b, "Hey you! **%s** is telling you to go study!", res.Name)
	}
	for _, m := range res.Mentions {
		b.WriteString(" " + m + "!")
	}
	return plain("%s", b.String())
}

// renderRoleMenu lists every purchasable role and its price. The
// notifier splits the fields across embeds past the 25-field limit.
func renderRoleMenu(roles []config.Role) *notifier.Message {
	msg := &notifier.Message{
		Title:       "Roles for Sale",
		Description: "Use !buyrole <role name> (case and space sensitive) to purchase a title.",
		Color:       embedColor,
	}
	for _, r := range roles {
		msg.Fields = append(msg.Fields, notifier.Field{
			Name:  r.Name,
			Value: fmt.Sprintf("$%d", r.Price),
		})
	}
	return msg
}

func renderRoster(res *economy.Roster) *notifier.Message {
	msg := &notifier.Message{
		Title:       "Closet Roster",
		Description: fmt.Sprintf("%.3f ft² of closet claimed across %d tenants.", res.TotalFt, len(res.Entries)),
		Color:       embedColor,
	}
	for _, e := range res.Entries {
		msg.Fields = append(msg.Fields, notifier.Field{
			Name: e.Name,
			Value: fmt.Sprintf("%.3f ft² · $%d · %d gambles / %d rolls left",
				e.FloorSpace, e.Balance, e.GamblesLeft, e.SlotRollsLeft),
		})
	}
	return msg
}
