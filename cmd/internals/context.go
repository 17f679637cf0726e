package client

//
// context.go
//

import (
	"flag"
	"fmt"
	"os"
)

// RunAction is the operation the CLI was asked to perform
type RunAction int

const (
	REGISTER RunAction = iota
	FETCH
	DECODE
	LIST
	EXPORT
)

func (r RunAction) String() string {
	return [...]string{"REGISTER", "FETCH", "DECODE", "LIST", "EXPORT"}[r]
}

var ThisRun RunAction
var SchemaPath string
var SchemaTypeFlag string
var SubjectFlag string
var SchemaIDFlag int
var MessagePath string

func GetFlags() {

	flag.StringVar(&SRUrl, "sr-url", "", "Url to the Schema Registry Cluster")
	flag.StringVar(&SRKey, "sr-key", "", "API KEY for the Schema Registry Cluster")
	flag.StringVar(&SRSecret, "sr-secret", "", "API SECRET for the Schema Registry Cluster")
	flag.IntVar(&HttpCallTimeout, "timeout", 30, "Timeout, in seconds, to use for all REST calls with the Schema Registry")
	flag.StringVar(&SubjectSeparator, "separator", ".", "Separator joining namespace and name when deriving AVRO subjects")
	flag.StringVar(&DefaultCompatibility, "compatibility", "", "Compatibility level to request on registration (BACKWARD, FORWARD, FULL, NONE, ...)")
	flag.StringVar(&SchemaPath, "schema", "", "Path to the schema file to register")
	flag.StringVar(&SchemaTypeFlag, "type", "", "Schema type of the file to register (AVRO, PROTOBUF, JSON). Guessed from the extension when omitted.")
	flag.StringVar(&SubjectFlag, "subject", "", "Subject to register/export under. Derived for AVRO schemas when omitted.")
	flag.IntVar(&SchemaIDFlag, "id", 0, "Schema ID to fetch or encode with")
	flag.StringVar(&MessagePath, "message", "", "Path to a wire-framed message file to decode")
	flag.StringVar(&PathToWrite, "localPath", "",
		"Optional custom path for local functions. This must be an existing directory structure.")
	flag.Var(&AllowList, "allowList", "A comma delimited list of schema subjects to allow. It also accepts paths to a file containing a list of subjects.")
	flag.Var(&DisallowList, "disallowList", "A comma delimited list of schema subjects to disallow. It also accepts paths to a file containing a list of subjects.")
	versionFlag := flag.Bool("version", false, "Print the current version and exit")
	usageFlag := flag.Bool("usage", false, "Print the usage of this tool")
	registerFlag := flag.Bool("register", false, "Register the schema given with -schema")
	fetchFlag := flag.Bool("fetch", false, "Fetch the schema behind -id and print it")
	decodeFlag := flag.Bool("decode", false, "Decode the framed message given with -message")
	listFlag := flag.Bool("list", false, "List subjects and their versions")
	exportFlag := flag.Bool("export", false, "Write all versions of -subject to -localPath")

	flag.Parse()

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	if *usageFlag {
		flag.PrintDefaults()
		os.Exit(0)
	}

	if DefaultCompatibility != "" {
		parsed, err := ParseCompatibility(DefaultCompatibility)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		DefaultCompatibility = parsed.String()
	}

	if !*registerFlag && !*fetchFlag && !*decodeFlag && !*listFlag && !*exportFlag {
		fmt.Println("You must specify a mode to run on.")
		fmt.Println("Usage:")
		fmt.Println("")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *registerFlag {
		ThisRun = REGISTER
	}

	if *fetchFlag {
		ThisRun = FETCH
	}

	if *decodeFlag {
		ThisRun = DECODE
	}

	if *listFlag {
		ThisRun = LIST
	}

	if *exportFlag {
		ThisRun = EXPORT
	}

}
