package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/loadsheet/internal/cli"
	"github.com/alexanderramin/loadsheet/internal/config"
	"github.com/alexanderramin/loadsheet/internal/db"
	"github.com/alexanderramin/loadsheet/internal/repository"
	"github.com/alexanderramin/loadsheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.loadsheet/loadsheet.db
	dbPath := os.Getenv("LOADSHEET_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".loadsheet", "loadsheet.db")
	}

	cfg, err := config.Load(os.Getenv("LOADSHEET_CONFIG"))
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	changeOrderRepo := repository.NewSQLiteChangeOrderRepo(database)
	budgetRepo := repository.NewSQLiteBudgetRepo(database)
	deptCapacityRepo := repository.NewSQLiteDepartmentCapacityRepo(database)
	teamRepo := repository.NewSQLiteExternalTeamRepo(database)
	teamCapacityRepo := repository.NewSQLiteExternalTeamCapacityRepo(database)
	stageConfigRepo := repository.NewSQLiteStageConfigRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Structured use-case telemetry goes to stderr when requested.
	var observers []service.UseCaseObserver
	if os.Getenv("LOADSHEET_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, budgetRepo),
		Employees: service.NewEmployeeService(employeeRepo),
		Cells:     service.NewCellService(assignmentRepo, employeeRepo, changeOrderRepo, observers...),
		Summaries: service.NewSummaryService(
			assignmentRepo, projectRepo, budgetRepo, changeOrderRepo,
			deptCapacityRepo, teamRepo, teamCapacityRepo, stageConfigRepo,
			cfg.Vocabulary(), cfg.Aggregator(), observers...),
		Capacity:     service.NewCapacityService(deptCapacityRepo, teamRepo, teamCapacityRepo, cfg.WriteDebounce(), observers...),
		ChangeOrders: service.NewChangeOrderService(changeOrderRepo, assignmentRepo, uow, observers...),
		StageConfig:  service.NewStageConfigService(stageConfigRepo, projectRepo),
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
