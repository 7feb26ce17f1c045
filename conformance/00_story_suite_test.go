package conformance

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStorySpoiler(t *testing.T) {
	st := &runState{}

	g.BeforeSuite(func() {
		setupSuite(st)
	})
	g.AfterSuite(teardownSuite)

	g.Describe(suiteDescription, g.Ordered, g.ContinueOnFailure, func() {
		g.Context(titleScenario, func() {
			test01Create(st)
			test02Edit(st)
			test03List(st)
			test04Delete(st)
			test05CreateInvalid(st)
			test06EditNonexistent(st)
			test07DeleteNonexistent(st)
		})
		test08Properties(st)
	})

	RegisterFailHandler(g.Fail)
	suiteConfig, reporterConfig := g.GinkgoConfiguration()
	if err := os.MkdirAll(filepath.Dir(reportJUnitFilename), 0o755); err != nil {
		t.Fatalf("cannot create results directory: %v", err)
	}
	reporterConfig.JUnitReport = reportJUnitFilename
	hr := newHTMLReporter(reportHTMLFilename)
	g.ReportBeforeEach(hr.beforeReport)
	g.ReportAfterEach(hr.afterReport)
	g.ReportAfterSuite("html custom reporter", func(r g.Report) {
		if err := hr.endSuite(r); err != nil {
			log.Printf("\nWARNING: cannot write HTML summary report: %v", err)
		}
	})
	g.RunSpecs(t, suiteDescription, suiteConfig, reporterConfig)
}
