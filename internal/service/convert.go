package service

import (
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/pkg/api"
)

func tabToAPI(tab *models.Tab) *api.Tab {
	out := &api.Tab{
		ID:        tab.ID,
		Name:      tab.Name,
		CreatedAt: tab.CreatedAt,
	}
	for i := range tab.Participants {
		out.Participants = append(out.Participants, participantToAPI(&tab.Participants[i]))
	}
	return out
}

func participantToAPI(p *models.Participant) *api.Participant {
	return &api.Participant{
		ID:          p.ID,
		TabID:       p.TabID,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:            e.ID,
		TabID:         e.TabID,
		Description:   e.Description,
		PayerID:       e.PayerID,
		Mode:          string(e.Mode),
		SubtotalCents: e.SubtotalCents,
		TaxCents:      e.TaxCents,
		FeeCents:      e.FeeCents,
		TipCents:      e.TipCents,
		TotalCents:    e.TotalCents,
		Total:         money.FormatCents(e.TotalCents),
		Splits:        make([]*api.Split, len(e.Splits)),
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
	for i, s := range e.Splits {
		out.Splits[i] = &api.Split{
			ParticipantID: s.ParticipantID,
			AmountCents:   s.AmountCents,
			Amount:        money.FormatCents(s.AmountCents),
		}
	}
	for _, item := range e.Items {
		out.Items = append(out.Items, &api.Item{
			ID:          item.ID,
			Description: item.Description,
			AmountCents: item.AmountCents,
			Claimants:   item.Claimants,
		})
	}
	return out
}

func personSplitsToAPI(splits []calculator.PersonSplit) []*api.PersonSplit {
	out := make([]*api.PersonSplit, len(splits))
	for i, s := range splits {
		ps := &api.PersonSplit{
			ParticipantID: s.ParticipantID,
			SubtotalCents: s.SubtotalCents,
			TaxCents:      s.TaxCents,
			FeeCents:      s.FeeCents,
			TipCents:      s.TipCents,
			TotalCents:    s.TotalCents,
			Total:         money.FormatCents(s.TotalCents),
		}
		for _, item := range s.Items {
			ps.Items = append(ps.Items, &api.ItemShare{
				ItemID:      item.ItemID,
				Description: item.Description,
				AmountCents: item.AmountCents,
			})
		}
		out[i] = ps
	}
	return out
}

func settlementToAPI(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:          s.ID,
		TabID:       s.TabID,
		FromID:      s.FromID,
		ToID:        s.ToID,
		AmountCents: s.AmountCents,
		Amount:      money.FormatCents(s.AmountCents),
		Note:        s.Note,
		CreatedAt:   s.CreatedAt,
	}
}

func balancesToAPI(balances []calculator.NetBalance, names map[string]string) []*api.Balance {
	out := make([]*api.Balance, len(balances))
	for i, b := range balances {
		out[i] = &api.Balance{
			ParticipantID: b.ParticipantID,
			DisplayName:   names[b.ParticipantID],
			PaidCents:     b.PaidCents,
			OwedCents:     b.OwedCents,
			NetCents:      b.NetCents,
			Net:           money.FormatCents(b.NetCents),
			Status:        string(b.Status()),
		}
	}
	return out
}

func transfersToAPI(transfers []calculator.Transfer) []*api.Transfer {
	out := make([]*api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = &api.Transfer{
			FromID:      t.FromID,
			ToID:        t.ToID,
			AmountCents: t.AmountCents,
			Amount:      money.FormatCents(t.AmountCents),
		}
	}
	return out
}
