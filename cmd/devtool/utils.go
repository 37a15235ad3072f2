package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL builds the connection string from DB_URL or the individual DB_*
// variables, matching the defaults in docker-compose.
func dbURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}

	dbUser := getEnv("DB_USER", "lorapp")
	dbPass := getEnv("DB_PASSWORD", "change_this_secure_password")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "lorapp")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
}

// checkHostile rejects argument values carrying shell metacharacters. Devtool
// arguments come from developers, not users, but some end up in commands that
// may reach a shell.
func checkHostile(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r") {
			return fmt.Errorf("hostile input detected: newlines or carriage returns")
		}
		if strings.Contains(s, "\x00") {
			return fmt.Errorf("hostile input detected: null byte")
		}
		for _, p := range []string{"|", "`", "$(", "&&", "||", ">", "<"} {
			if strings.Contains(s, p) {
				return fmt.Errorf("hostile input detected: pattern %q in %q", p, s)
			}
		}
	}
	return nil
}

func getCommandOutput(name string, args ...string) (string, error) {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return "", err
	}
	// #nosec G204 - Generic command wrapper
	cmd := exec.Command(name, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runCommand runs a command silently
func runCommand(name string, args ...string) error {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return err
	}
	// #nosec G204 - Generic command wrapper
	cmd := exec.Command(name, args...)
	return cmd.Run()
}

// runCommandVerbose runs a command and pipes output to stdout/stderr
func runCommandVerbose(name string, args ...string) error {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return err
	}
	// #nosec G204 - Generic command wrapper
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
