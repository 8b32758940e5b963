// Command kdcbs runs the two-level conflict-based search planner against a
// YAML problem file.
package main

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
)

func main() {
	Execute(buildVersion, buildCommit)
}
