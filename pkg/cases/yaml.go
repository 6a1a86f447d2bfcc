package cases

// yamlSuite is the intermediate struct for parsing the suite YAML format.
// Maps YAML fields to the Suite structure.
type yamlSuite struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Automaton   string      `yaml:"automaton"`
	Checks      []yamlCheck `yaml:"checks"`
}

// yamlCheck pairs an input with its expected output text.
type yamlCheck struct {
	Input string `yaml:"input"`
	Want  string `yaml:"want"`
}

// yamlSuitesFile represents the top-level structure of a suites YAML file,
// a "suites" array.
type yamlSuitesFile struct {
	Suites []yamlSuite `yaml:"suites"`
}
