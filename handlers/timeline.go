// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"

	"github.com/danielhkuo/slowpoll/models"
)

func authorName(names map[string]string, phid string) string {
	if name, ok := names[phid]; ok {
		return name
	}
	return "Unknown User"
}

func transactionTitle(x models.Transaction, author string) string {
	switch x.TransactionType {
	case models.TransactionCreate:
		return fmt.Sprintf("%s created this poll.", author)
	case models.TransactionQuestion:
		return fmt.Sprintf("%s changed the poll question from %q to %q.", author, x.OldValue, x.NewValue)
	case models.TransactionDescription:
		return fmt.Sprintf("%s updated the description for this poll.", author)
	case models.TransactionAddOption:
		return fmt.Sprintf("%s added the option %q.", author, x.NewValue)
	case models.TransactionClose:
		if x.NewValue == models.StatusClosed {
			return fmt.Sprintf("%s closed this poll.", author)
		}
		return fmt.Sprintf("%s reopened this poll.", author)
	case models.TransactionComment:
		return fmt.Sprintf("%s added a comment.", author)
	}
	return fmt.Sprintf("%s edited this poll.", author)
}

func transactionIcon(x models.Transaction) string {
	switch x.TransactionType {
	case models.TransactionCreate:
		return "plus"
	case models.TransactionAddOption:
		return "list"
	case models.TransactionClose:
		if x.NewValue == models.StatusClosed {
			return "lock"
		}
		return "unlock"
	case models.TransactionComment:
		return "comment"
	}
	return "pencil"
}
