package conformance

import (
	"net/http"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

var test07DeleteNonexistent = func(st *runState) {
	g.Specify("DELETE a nonexistent story should yield 400 and refuse the deletion", func() {
		SkipIfScenarioDisabled()
		resp, err := client.Delete(st.cred, nonexistentDeleteID)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest), resp.String())

		env, err := resp.Envelope()
		Expect(err).To(BeNil())
		Expect(env.Message).To(Equal(v1.MsgUnableToDelete))
	})
}
