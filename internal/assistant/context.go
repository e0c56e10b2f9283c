// Package assistant turns a user's boards into a system prompt and talks to
// an OpenAI-compatible chat completion API.
package assistant

import (
	"fmt"
	"strings"

	"kanbanapi/internal/model"
)

const (
	descriptionLimit = 100
	dateLayout       = "1/2/2006"
)

const preamble = `You are a focused Kanban task assistant. Your role is ONLY to help with task management, board organization, and project planning.

IMPORTANT RULES:
- ONLY answer questions about tasks, boards, projects, and productivity
- If asked about anything else, say: "I only help with your Kanban tasks and boards. What would you like to know about your projects?"
- Be helpful but concise
- Reference specific tasks/boards when relevant`

const helpFooter = `

You can help with:
- Task prioritization and organization
- Board structure optimization
- Project planning and deadlines
- Workflow improvements`

const starterFooter = `

Since they're starting out, help with:
- Board setup and organization
- Task management basics
- Getting organized efficiently`

const reminder = `

REMEMBER: Keep answers SHORT and FOCUSED. Only discuss Kanban, tasks, and productivity. Reference their specific data when helpful.`

// CountCards returns the number of cards across the expanded columns of boards.
func CountCards(boards []model.Board) int {
	total := 0
	for _, b := range boards {
		total += countBoardCards(b)
	}
	return total
}

func countBoardCards(board model.Board) int {
	n := 0
	for _, c := range board.Columns {
		n += len(c.Cards)
	}
	return n
}

// BuildContext renders the system prompt for user. Boards must have their
// columns and cards expanded. user may be nil.
func BuildContext(user *model.User, boards []model.Board) string {
	var sb strings.Builder
	sb.WriteString(preamble)

	if user != nil {
		fmt.Fprintf(&sb, "\n\nUser Information:\n- Username: %s\n- Email: %s", user.Username, user.Email)
	}

	if len(boards) == 0 {
		sb.WriteString(starterFooter)
		sb.WriteString(reminder)
		return sb.String()
	}

	fmt.Fprintf(&sb, "\n\nUser's Boards (%d total boards, %d total cards):\n", len(boards), CountCards(boards))
	for i, board := range boards {
		writeBoard(&sb, i+1, board)
	}

	// Priorities are listed in the order they are first seen.
	var order []model.Priority
	counts := make(map[model.Priority]int)
	for _, board := range boards {
		for _, column := range board.Columns {
			for _, card := range column.Cards {
				if _, ok := counts[card.Priority]; !ok {
					order = append(order, card.Priority)
				}
				counts[card.Priority]++
			}
		}
	}
	if len(order) > 0 {
		sb.WriteString("\n\n**Task Priority Summary:**")
		for _, p := range order {
			fmt.Fprintf(&sb, "\n- %s: %d cards", p, counts[p])
		}
	}

	sb.WriteString(helpFooter)
	sb.WriteString(reminder)
	return sb.String()
}

func writeBoard(sb *strings.Builder, n int, board model.Board) {
	description := board.Description
	if description == "" {
		description = "No description"
	}
	public := "No"
	if board.IsPublic {
		public = "Yes"
	}
	cardCount := countBoardCards(board)

	fmt.Fprintf(sb, "\n**%d. \"%s\"**", n, board.Title)
	fmt.Fprintf(sb, "\n   - Description: %s", description)
	fmt.Fprintf(sb, "\n   - Public: %s", public)
	fmt.Fprintf(sb, "\n   - Members: %d", len(board.Members))
	fmt.Fprintf(sb, "\n   - Columns: %d", len(board.Columns))
	fmt.Fprintf(sb, "\n   - Total Cards: %d", cardCount)
	fmt.Fprintf(sb, "\n   - Created: %s", board.CreatedAt.Format(dateLayout))

	if cardCount == 0 {
		return
	}
	sb.WriteString("\n   - Columns & Cards:")
	for _, column := range board.Columns {
		if len(column.Cards) == 0 {
			continue
		}
		fmt.Fprintf(sb, "\n     • %s (%d cards):", column.Title, len(column.Cards))
		for _, card := range column.Cards {
			writeCard(sb, card)
		}
	}
}

func writeCard(sb *strings.Builder, card model.Card) {
	fmt.Fprintf(sb, "\n       - \"%s\"", card.Title)
	if card.Priority != "" {
		fmt.Fprintf(sb, " | Priority: %s", card.Priority)
	}
	if card.DueDate != nil {
		fmt.Fprintf(sb, " | Due: %s", card.DueDate.Format(dateLayout))
	}
	if card.Description != "" {
		fmt.Fprintf(sb, " | Desc: %s", truncate(card.Description, descriptionLimit))
	}
}

// truncate cuts s to limit runes and marks the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
