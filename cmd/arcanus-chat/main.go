// Package main provides a terminal chat client for the arcanus API.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arcanus/arcanus/internal/domain"
	"github.com/arcanus/arcanus/internal/rules"
)

// Client talks to the chat endpoint and keeps the conversation state the
// server expects the caller to hold: transcript plus merged character.
type Client struct {
	baseURL   string
	token     string
	http      *http.Client
	character domain.Character
	history   []domain.ChatMessage
}

// NewClient creates a chat client with a fresh character.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		http:      &http.Client{Timeout: 5 * time.Minute},
		character: domain.DefaultCharacter(),
	}
}

type chatRequest struct {
	Messages  []domain.ChatMessage `json:"messages"`
	Character domain.Character     `json:"character"`
}

// SendTurn posts one user message and consumes the SSE reply, printing text
// as it streams and applying structured updates to the local character.
func (c *Client) SendTurn(content string) error {
	c.history = append(c.history, domain.ChatMessage{
		ID:      "msg_" + uuid.New().String()[:8],
		Role:    domain.RoleUser,
		Content: content,
	})

	body, err := json.Marshal(chatRequest{Messages: c.history, Character: c.character})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	var assistantText strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		payload, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}

		var ev domain.StreamEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			log.Printf("bad event %q: %v", payload, err)
			continue
		}

		switch ev.Type {
		case domain.StreamEventText:
			fmt.Print(ev.Text)
			assistantText.WriteString(ev.Text)
		case domain.StreamEventCharacterUpdate:
			if ev.Updates != nil {
				c.character = domain.Apply(c.character, *ev.Updates)
				fmt.Print("\n  [sheet updated]")
			}
		case domain.StreamEventError:
			fmt.Printf("\n  [error: %s]", ev.Message)
		case domain.StreamEventDone:
			fmt.Println()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	if text := assistantText.String(); text != "" {
		c.history = append(c.history, domain.ChatMessage{
			ID:      "msg_" + uuid.New().String()[:8],
			Role:    domain.RoleAssistant,
			Content: text,
		})
	}
	return nil
}

// PrintSheet dumps the current character as indented JSON followed by the
// derived values the sheet never stores.
func (c *Client) PrintSheet() {
	data, err := json.MarshalIndent(c.character, "", "  ")
	if err != nil {
		log.Printf("encode character: %v", err)
		return
	}
	fmt.Println(string(data))
	for _, line := range derivedSummary(c.character) {
		fmt.Println(line)
	}
}

// derivedSummary computes the read-only sheet lines: proficiency bonus,
// ability modifiers, hit die and spellcasting math.
func derivedSummary(ch domain.Character) []string {
	prof := rules.ProficiencyBonus(ch.Level)
	lines := []string{"Proficiency bonus: " + rules.FormatModifier(prof)}

	scores := abilityScoresByKey(ch)
	var mods []string
	for _, a := range rules.Abilities {
		if score := scores[a.Key]; score > 0 {
			mods = append(mods, a.Abbr+" "+rules.FormatModifier(rules.AbilityModifier(score)))
		}
	}
	if len(mods) > 0 {
		lines = append(lines, "Modifiers: "+strings.Join(mods, " "))
	}

	if hd := rules.HitDieForClass(ch.Class); hd != "" {
		lines = append(lines, "Hit die: "+hd)
	}

	ability := rules.SpellcastingAbility(ch.Class)
	if ch.Spellcasting != nil && ch.Spellcasting.SpellcastingAbility != "" {
		ability = ch.Spellcasting.SpellcastingAbility
	}
	if score := scores[strings.ToLower(ability)]; score > 0 {
		lines = append(lines, fmt.Sprintf("Spell save DC %d, spell attack %s",
			rules.SpellSaveDC(score, prof),
			rules.FormatModifier(rules.SpellAttackBonus(score, prof))))
	}
	return lines
}

func abilityScoresByKey(ch domain.Character) map[string]int {
	return map[string]int{
		"strength":     ch.AbilityScores.Strength,
		"dexterity":    ch.AbilityScores.Dexterity,
		"constitution": ch.AbilityScores.Constitution,
		"intelligence": ch.AbilityScores.Intelligence,
		"wisdom":       ch.AbilityScores.Wisdom,
		"charisma":     ch.AbilityScores.Charisma,
	}
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "arcanus server address")
	token := flag.String("token", "", "bearer token (see cmd/mktoken)")
	flag.Parse()

	log.SetFlags(log.Ltime)

	if *token == "" {
		log.Fatal("a -token is required")
	}

	client := NewClient(*addr, *token)

	fmt.Println("Arcanus character creation. Type a message and press Enter.")
	fmt.Println("Commands: /sheet to show the character, /quit to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit":
			fmt.Println("Bye!")
			return
		case "/sheet":
			client.PrintSheet()
			continue
		}

		if err := client.SendTurn(input); err != nil {
			log.Printf("turn failed: %v", err)
		}
	}
}
