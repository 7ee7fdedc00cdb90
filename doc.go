/*
Package envcheck checks .env files against the environment variables that a
project declares in its schemas.

Declarations are read from the schema files a project already has (Zod
objects in TypeScript, Pydantic settings classes in Python, YAML documents)
and from schemas declared in Go with pkg/schema. The engine compares them
with the project's env files and reports required variables that are missing
and entries that no schema declares.

# Usage

	eng, err := envcheck.New("./my-app")
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Check(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, v := range report.Missing {
		fmt.Println("missing:", v.Name)
	}

	// Generate a .env.example grouped by variable group.
	fmt.Println(eng.Example())

# Workspace configuration

An optional .envchecker.json (comments allowed) at the workspace root lists
extra schema files, the env files to check (literal paths or globs), whether
schema files are auto-discovered, and display aliases for groups.

# Storage

Reports are kept per workspace in a ports.ReportStore: in memory by default,
or in Redis (pkg/adapters/redis) to share them between replicas. A
ports.DistributedLocker serializes checks of the same workspace.
*/
package envcheck
