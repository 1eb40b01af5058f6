// cmd/minigit/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"minigit/internal/config"
	"minigit/internal/diff"
	"minigit/internal/errors"
	"minigit/internal/logging"
	"minigit/internal/repo"
)

var rootCmd = &cobra.Command{
	Use:   "minigit",
	Short: "minigit is a miniature content-addressed version control system",
	Long: `minigit tracks the history of regular files in a single directory.
It provides content-addressed snapshots, named branches, movement between
historical snapshots, and diffs between working, staged and committed states.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// openRepo builds the repository handle for the current directory: config,
// logger, stores. One handle per command.
func openRepo() (*repo.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(repo.ConfigPath(dir))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	color.NoColor = color.NoColor || !cfg.Color

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return repo.Open(dir, cfg, logger)
}

func init() {
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize a new minigit repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			already, err := repo.Initialize(dir)
			if err != nil {
				return fmt.Errorf("initializing repository: %w", err)
			}
			if already {
				fmt.Println("minigit repository already initialized in .minigit")
				return nil
			}

			fmt.Println("Initialized empty minigit repository in", dir)
			return nil
		},
	}

	var addCmd = &cobra.Command{
		Use:   "add <path>",
		Short: "Add a file's content to the staging area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			outcome, err := r.Add(args[0])
			if err != nil {
				// A file that cannot be read is skipped with a warning,
				// not a failed command.
				if errors.IsType(err, errors.ErrorTypeReadFailure) {
					fmt.Fprintf(os.Stderr, "Warning: %v. Not added.\n", err)
					return nil
				}
				return err
			}

			if outcome.Unchanged {
				fmt.Printf("File already up to date in staging: %s\n", args[0])
				return nil
			}
			fmt.Printf("Added file to staging: %s (%s)\n", args[0], short(outcome.Fingerprint))
			return nil
		},
	}

	var commitCmd = &cobra.Command{
		Use:   "commit <message...>",
		Short: "Record staged changes to the repository",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			record, err := r.Commit(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("committing: %w", err)
			}
			if record == nil {
				fmt.Println("No changes to commit. Staging area is empty or identical to HEAD.")
				return nil
			}

			fmt.Printf("Committed as %s\n", short(record.Fingerprint))
			return nil
		},
	}

	var logCmd = &cobra.Command{
		Use:   "log",
		Short: "Show commit history from HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			entries, logErr := r.Log()
			if errors.IsType(logErr, errors.ErrorTypeEmptyHistory) {
				fmt.Println("No commits yet.")
				return nil
			}

			yellow := color.New(color.FgYellow).SprintFunc()
			for _, entry := range entries {
				fmt.Printf("Commit: %s", yellow(short(entry.Commit.Fingerprint)))
				if len(entry.Decorations) > 0 {
					fmt.Printf(" (%s)", strings.Join(entry.Decorations, ", "))
				}
				fmt.Println()

				if len(entry.Commit.Parents) > 0 {
					parents := make([]string, len(entry.Commit.Parents))
					for i, parent := range entry.Commit.Parents {
						parents[i] = short(parent)
					}
					fmt.Printf("Parents: %s\n", strings.Join(parents, " "))
				}
				fmt.Printf("Date:    %s\n", entry.Commit.Timestamp)
				fmt.Printf("Message: %s\n\n", entry.Commit.Message)
			}

			// A corrupt reference stops the walk; everything before it has
			// been shown already.
			return logErr
		},
	}

	var branchCmd = &cobra.Command{
		Use:   "branch <name>",
		Short: "Create a new branch at HEAD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			fingerprint, err := r.CreateBranch(args[0])
			if err != nil {
				if errors.IsType(err, errors.ErrorTypeEmptyHistory) {
					return fmt.Errorf("cannot create branch: no commits yet")
				}
				return err
			}

			fmt.Printf("Created branch: %s pointing to %s\n", args[0], short(fingerprint))
			return nil
		},
	}

	var checkoutCmd = &cobra.Command{
		Use:   "checkout <target>",
		Short: "Switch branches or restore the working tree to a commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			result, err := r.Checkout(args[0])
			if err != nil {
				if errors.IsType(err, errors.ErrorTypeDirtyWorkingTree) {
					fmt.Fprintln(os.Stderr, "Error: Your working directory has uncommitted changes. Please commit or stash them before checking out.")
					if report, statusErr := r.Status(); statusErr == nil {
						printStatus(report)
					}
				}
				return err
			}

			for _, name := range result.Removed {
				fmt.Printf("Removed: %s\n", name)
			}

			branch, attached := result.Head.Branch()
			switch {
			case result.AlreadyThere && attached:
				fmt.Printf("Already on branch '%s'.\n", branch)
			case result.AlreadyThere:
				fmt.Printf("Already on commit %s (detached HEAD).\n", short(result.Fingerprint))
			case result.EmptyBranch:
				fmt.Printf("Switched to branch: %s (empty branch, no files restored).\n", branch)
			case attached:
				fmt.Printf("Switched to branch: %s\n", branch)
			default:
				fmt.Printf("Checked out commit: %s (detached HEAD)\n", short(result.Fingerprint))
			}
			return nil
		},
	}

	var statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the working tree status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			report, err := r.Status()
			if err != nil {
				return fmt.Errorf("getting status: %w", err)
			}

			printStatus(report)
			return nil
		},
	}

	var diffCmd = &cobra.Command{
		Use:   "diff [target] [target]",
		Short: "Show changes between commits, staging and the working tree",
		Long: `Show differences between repository states.

  minigit diff                     working directory vs staging
  minigit diff --staged|--cached   staging vs HEAD commit
  minigit diff <commit>            working directory vs a commit
  minigit diff <commit1> <commit2> two commits`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			report, err := r.Diff(args...)
			if err != nil {
				if errors.IsType(err, errors.ErrorTypeEmptyHistory) {
					fmt.Println("No HEAD commit to compare against. Use `commit` first.")
					return nil
				}
				return err
			}

			printDiff(report)
			return nil
		},
	}

	// --staged / --cached reach diff as plain arguments, not flags.
	diffCmd.DisableFlagParsing = true

	rootCmd.AddCommand(initCmd, addCmd, commitCmd, logCmd, branchCmd, checkoutCmd, statusCmd, diffCmd)
}

func printStatus(report *repo.StatusReport) {
	if branch, ok := report.Head.Branch(); ok {
		fmt.Printf("On branch %s\n", branch)
	} else {
		fmt.Println("On (detached HEAD)")
	}
	if report.HeadFingerprint == "" {
		fmt.Println("HEAD points to: No commits yet")
	} else {
		fmt.Printf("HEAD points to: %s\n", short(report.HeadFingerprint))
	}
	fmt.Println()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()

	staged := report.Tree.Staged
	if !staged.Empty() {
		fmt.Println("Changes to be committed:")
		for _, name := range staged.Added {
			fmt.Printf("\t%s %s\n", green("New file:"), name)
		}
		for _, name := range staged.Modified {
			fmt.Printf("\t%s %s\n", green("Modified:"), name)
		}
		for _, name := range staged.Deleted {
			fmt.Printf("\t%s  %s\n", green("Deleted:"), name)
		}
		fmt.Println()
	}

	unstaged := report.Tree.Unstaged
	if len(unstaged.Modified) > 0 || len(unstaged.Deleted) > 0 {
		fmt.Println("Changes not staged for commit:")
		fmt.Println("  (use \"minigit add <file>...\" to update what will be committed)")
		for _, name := range unstaged.Modified {
			fmt.Printf("\t%s %s\n", yellow("Modified:"), name)
		}
		for _, name := range unstaged.Deleted {
			fmt.Printf("\t%s  %s\n", red("Deleted:"), name)
		}
		fmt.Println()
	}

	if len(unstaged.Untracked) > 0 {
		fmt.Println("Untracked files:")
		fmt.Println("  (use \"minigit add <file>...\" to include in what will be committed)")
		for _, name := range unstaged.Untracked {
			fmt.Printf("\t%s %s\n", blue("?"), name)
		}
		fmt.Println()
	}

	if report.Tree.Clean() {
		fmt.Println("Your working directory is clean.")
	}
}

func printDiff(report *repo.DiffReport) {
	fmt.Println(report.Title)

	if len(report.Files) == 0 {
		fmt.Println(report.EmptyMessage)
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, file := range report.Files {
		header := file.Name
		if file.Annotation != "" {
			header += " (" + file.Annotation + ")"
		}
		fmt.Printf("--- Diff for: %s ---\n", header)
		for _, line := range file.Result.Lines {
			switch line.Type {
			case diff.Addition:
				fmt.Println(green("+ " + line.Content))
			case diff.Deletion:
				fmt.Println(red("- " + line.Content))
			default:
				fmt.Println("  " + line.Content)
			}
		}
		fmt.Println("---------------------------")
	}
}

func short(fingerprint string) string {
	if len(fingerprint) > 7 {
		return fingerprint[:7]
	}
	return fingerprint
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
