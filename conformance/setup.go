package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/api-tests/internal/config"
	"github.com/storyspoiler/api-tests/test/pkg/auth"
	"github.com/storyspoiler/api-tests/test/pkg/story"
)

const (
	titleScenario   = "Scenario"
	titleProperties = "Properties"

	envVarProperties = "STORY_TEST_PROPERTIES"

	nonexistentEditID   = "123"
	nonexistentDeleteID = "999"
)

// runState carries what earlier cases learned to later ones. Only the
// create case writes lastCreatedStoryID.
type runState struct {
	cred               auth.Credential
	lastCreatedStoryID string
}

var (
	cfg                 config.Config
	configErr           error
	client              *story.Client
	httpWriter          *httpDebugWriter
	reportJUnitFilename string
	reportHTMLFilename  string
	suiteDescription    string
	Version             = "unknown"
)

func init() {
	cfg, configErr = config.Load()
	if configErr == nil && cfg.Version != "" {
		Version = cfg.Version
	}
	httpWriter = newHTTPDebugWriter(cfg.Debug)

	resultsDir := cfg.ResultsDir
	if resultsDir == "" {
		resultsDir = "."
	}
	reportJUnitFilename = filepath.Join(resultsDir, "junit.xml")
	reportHTMLFilename = filepath.Join(resultsDir, "report.html")
	suiteDescription = "Story Spoiler API Tests"
}

// setupSuite builds the client and authenticates. Any failure here fails
// the suite before the first case runs.
func setupSuite(st *runState) {
	Expect(configErr).NotTo(HaveOccurred(), "failed to load configuration")
	var err error
	client, err = story.NewClient(cfg.BaseURL,
		story.WithDebug(true),
		story.WithLogger(newHTTPDebugLogger(httpWriter)),
		story.WithUserAgent(cfg.UserAgent))
	Expect(err).NotTo(HaveOccurred())
	g.DeferCleanup(client.Close)

	st.cred, err = client.Authenticate(cfg.Username, cfg.Password)
	Expect(err).NotTo(HaveOccurred(), "failed to authenticate as %s against %s", cfg.Username, cfg.BaseURL)
}

func teardownSuite() {
	client.Close()
}

// SkipIfNoStory skips a case that needs the identifier captured by create.
func SkipIfNoStory(st *runState) string {
	if st.lastCreatedStoryID == "" {
		g.Skip("no story identifier was captured by the create case")
	}
	return st.lastCreatedStoryID
}

// SkipIfScenarioDisabled skips the seven ordered cases.
func SkipIfScenarioDisabled() {
	if !cfg.Tests.Scenario {
		g.Skip("scenario cases are disabled in the configuration")
	}
}

// SkipIfPropertiesDisabled skips the optional property cases.
func SkipIfPropertiesDisabled() {
	if !cfg.Tests.Properties {
		g.Skip(fmt.Sprintf("property cases create extra stories; set %s=1 to run them (currently %q)",
			envVarProperties, os.Getenv(envVarProperties)))
	}
}
