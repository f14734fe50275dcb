// Command validate provides a small CLI that validates content pack JSON
// files in the ../packs directory. It checks:
//   - JSON structure and the engine's pack validation rules
//   - Required message keys and their format verbs
//   - Catalog completeness (one puzzle per type)
//   - Solvability: quiz answers appear among their options, and scramble
//     questions contain a token that is an anagram of the answer
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"relicquest/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePackFile loads and validates a single content pack JSON file.
// It runs the engine's structural validation and then the deeper
// solvability checks.
func validatePackFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var pack engine.ContentPack
	if err := json.Unmarshal(data, &pack); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateContentPack(&pack); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Solvability checks on every puzzle in play
	puzzles := append([]engine.Puzzle{}, pack.Catalog...)
	puzzles = append(puzzles, pack.FinalPuzzle, pack.BonusPuzzle)
	for _, pz := range puzzles {
		for _, issue := range checkSolvability(pz) {
			result.Valid = false
			result.Errors = append(result.Errors, issue)
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", pack.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Catalog puzzles: %d", len(pack.Catalog)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Ambient events: %d", len(pack.Events)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Flavor lines: %d", len(pack.Flavor)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Final reward: %d gold, %d xp, title %q",
			pack.FinalReward.Gold, pack.FinalReward.Experience, pack.FinalReward.Title))
	}

	return result
}

// checkSolvability verifies that a puzzle can actually be answered from the
// information the player sees: quiz answers must appear among the options,
// and scramble questions must contain an anagram of the answer.
func checkSolvability(pz engine.Puzzle) []string {
	var issues []string

	switch pz.Type {
	case engine.PuzzleQuiz:
		if len(pz.Options) == 0 {
			issues = append(issues, fmt.Sprintf("Quiz %q has no options", pz.Question))
			break
		}
		found := false
		for _, opt := range pz.Options {
			if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(pz.Answer)) {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, fmt.Sprintf("Quiz answer %q is not among its options", pz.Answer))
		}

	case engine.PuzzleScramble:
		if !questionContainsAnagram(pz.Question, pz.Answer) {
			issues = append(issues, fmt.Sprintf("Scramble question does not contain an anagram of the answer %q", pz.Answer))
		}
	}

	return issues
}

// questionContainsAnagram reports whether any token of the question is an
// anagram of the answer. The scrambled token is conventionally uppercase,
// so comparison is case-insensitive.
func questionContainsAnagram(question, answer string) bool {
	want := sortedLetters(answer)
	for _, token := range strings.FieldsFunc(question, func(r rune) bool {
		return r == ' ' || r == ':' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		if sortedLetters(token) == want {
			return true
		}
	}
	return false
}

func sortedLetters(s string) string {
	letters := strings.Split(strings.ToLower(strings.TrimSpace(s)), "")
	sort.Strings(letters)
	return strings.Join(letters, "")
}

// main scans ../packs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	packDir := "../packs"
	files, err := filepath.Glob(filepath.Join(packDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding pack files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePackFile(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All content packs are valid!")
	} else {
		fmt.Println("❌ Some content packs have errors")
		os.Exit(1)
	}
}
