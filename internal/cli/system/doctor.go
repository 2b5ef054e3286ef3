package system

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-ps"

	"habitkeep/internal/cli"
	"habitkeep/internal/constants"
	"habitkeep/internal/models"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if _, _, err := ctx.KV.Get(constants.KeyUsers); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		return fmt.Errorf("doctor found problems")
	}
	fmt.Printf("✓ Store reachable: OK\n")

	// Check 2: user directory parses
	users, err := checkUserDirectory(ctx)
	if err != nil {
		fmt.Printf("⚠ User directory: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ User directory: OK (%d users)\n", len(users))
	}

	// Check 3: session snapshot references a known user
	if err := checkSessionSnapshot(ctx, users); err != nil {
		fmt.Printf("⚠ Session snapshot: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Session snapshot: OK\n")
	}

	// Check 4: completion integrity per user
	if err := checkCompletionIntegrity(ctx, users); err != nil {
		fmt.Printf("⚠ Completion integrity: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Completion integrity: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: concurrent process check
	if err := checkDuplicateProcess(); err != nil {
		fmt.Printf("⚠ Concurrent process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent process: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkUserDirectory(ctx *cli.Context) (map[string]models.User, error) {
	raw, ok, err := ctx.KV.Get(constants.KeyUsers)
	if err != nil {
		return nil, err
	}
	users := make(map[string]models.User)
	if !ok {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return users, fmt.Errorf("users value is not valid JSON and will be treated as empty: %v", err)
	}
	return users, nil
}

func checkSessionSnapshot(ctx *cli.Context, users map[string]models.User) error {
	raw, ok, err := ctx.KV.Get(constants.KeyCurrentUser)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var snapshot models.User
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return fmt.Errorf("session snapshot is not valid JSON: %v", err)
	}
	current, known := users[snapshot.Email]
	if !known {
		return fmt.Errorf("session snapshot references unknown user %q", snapshot.Email)
	}
	// The snapshot is a denormalized copy and can drift from the directory.
	if current.ID != snapshot.ID {
		return fmt.Errorf("session snapshot for %q is stale (id mismatch); log out and back in", snapshot.Email)
	}
	return nil
}

// checkCompletionIntegrity looks for completion entries keyed by habit
// ids that no longer exist in the owning user's habit list. Toggling an
// unknown id creates these orphans.
func checkCompletionIntegrity(ctx *cli.Context, users map[string]models.User) error {
	orphans := 0
	for email := range users {
		var habitList []models.Habit
		if raw, ok, err := ctx.KV.Get(constants.UserKey(email, constants.SuffixHabits)); err != nil {
			return err
		} else if ok {
			if err := json.Unmarshal([]byte(raw), &habitList); err != nil {
				return fmt.Errorf("habit list for %q is not valid JSON: %v", email, err)
			}
		}

		var completions models.CompletionMatrix
		if raw, ok, err := ctx.KV.Get(constants.UserKey(email, constants.SuffixCompletions)); err != nil {
			return err
		} else if ok {
			if err := json.Unmarshal([]byte(raw), &completions); err != nil {
				return fmt.Errorf("completions for %q are not valid JSON: %v", email, err)
			}
		}

		known := make(map[string]bool, len(habitList))
		for _, h := range habitList {
			known[h.ID] = true
		}
		for id := range completions {
			if !known[id] {
				orphans++
			}
		}
	}

	if orphans > 0 {
		return fmt.Errorf("%d orphaned completion entries (habit ids with no matching habit)", orphans)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system clock reports implausible year %d", now.Year())
	}
	zone, _ := now.Zone()
	if zone == "" {
		return fmt.Errorf("no timezone configured; completion dates are local-time")
	}
	return nil
}

// checkDuplicateProcess warns when another habitkeep process is running.
// Concurrent writers to the same store are last-writer-wins with no
// conflict detection.
func checkDuplicateProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not list processes: %v", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == constants.AppName {
			return fmt.Errorf("another %s process is running (pid %d); concurrent writes are not coordinated", constants.AppName, p.Pid())
		}
	}
	return nil
}
