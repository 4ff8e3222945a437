package stubapi_test

import (
	"context"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/client"
	"github.com/auditlens/auditlens/internal/stubapi"
)

var _ = Describe("stub analytics server", func() {
	var (
		server *httptest.Server
		c      *client.Client
		ctx    context.Context
	)

	BeforeEach(func() {
		server = httptest.NewServer(stubapi.Handler())
		c = client.New(server.URL)
		ctx = context.Background()
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("trial balance diagnostics", func() {
		It("matches the data rows of a well-formed upload", func() {
			upload := "account,debit,credit\n1000,500,0\n2000,0,500\n4000,0,250\n"
			result, err := c.SubmitTrialBalance(ctx, "tb.csv", strings.NewReader(upload))
			Expect(err).To(Succeed())
			Expect(result.MatchedCount).To(Equal(3))
			Expect(result.TotalDebits).To(Equal(result.TotalCredits))
		})

		It("rejects an upload without debit and credit columns", func() {
			_, err := c.SubmitTrialBalance(ctx, "tb.csv", strings.NewReader("a,b\n1,2\n"))
			Expect(err).To(MatchError("No matching columns"))
		})

		It("rejects a submission without a file part", func() {
			out := &api.TrialBalanceDiagnostics{}
			err := c.PostMultipart(ctx, "/audit/trial-balance", nil, nil, out)
			Expect(err).To(MatchError(ContainSubstring(`field "file" is required`)))
		})
	})

	Describe("flux analysis", func() {
		It("flags rows at or above the requested threshold", func() {
			result, err := c.SubmitFlux(ctx, "comparative.csv", strings.NewReader("account,prior,current\n4000,1,2\n"), 15)
			Expect(err).To(Succeed())
			Expect(result.ThresholdPct).To(Equal(15.0))
			Expect(result.FlaggedCount).To(Equal(1))
			Expect(result.Rows).ToNot(BeEmpty())
			Expect(result.Rows[0].RiskReasons).To(ContainElement("above threshold"))
		})
	})

	Describe("benchmarks", func() {
		It("serves the industry catalog without a token", func() {
			industries, err := c.ListIndustries(ctx)
			Expect(err).To(Succeed())
			Expect(industries).ToNot(BeEmpty())
		})

		It("compares company metrics against fabricated industry figures", func() {
			comparison, err := c.CompareBenchmarks(ctx, client.BenchmarkRequest{
				IndustryCode: "4411",
				FiscalYear:   2026,
				Metrics:      map[string]float64{"current_ratio": 1.8, "gross_margin": 0.42},
			})
			Expect(err).To(Succeed())
			Expect(comparison.IndustryName).To(Equal("Automobile Dealers"))
			Expect(comparison.Metrics).To(HaveLen(2))
			Expect(comparison.Metrics[0].Name).To(Equal("current_ratio"))
		})

		It("rejects a comparison without an industry code", func() {
			_, err := c.CompareBenchmarks(ctx, client.BenchmarkRequest{FiscalYear: 2026})
			Expect(err).To(MatchError("industry_code is required"))
		})
	})

	Describe("follow-up register", func() {
		It("lists seeded items and applies partial updates", func() {
			items, err := c.ListFollowUps(ctx)
			Expect(err).To(Succeed())
			Expect(items).ToNot(BeEmpty())

			disposition := api.DispositionResolved
			updated, err := c.UpdateFollowUp(ctx, items[0].ID, api.FollowUpUpdate{Disposition: &disposition})
			Expect(err).To(Succeed())
			Expect(updated.Disposition).To(Equal(api.DispositionResolved))
			Expect(updated.Description).To(Equal(items[0].Description))
		})

		It("threads comments onto an item", func() {
			items, err := c.ListFollowUps(ctx)
			Expect(err).To(Succeed())

			updated, err := c.AddFollowUpComment(ctx, items[1].ID, "mchan", "Discussed with controller; support requested.")
			Expect(err).To(Succeed())
			Expect(updated.Comments).To(HaveLen(1))
			Expect(updated.Comments[0].Author).To(Equal("mchan"))
		})

		It("404s an unknown item", func() {
			_, err := c.UpdateFollowUp(ctx, "missing", api.FollowUpUpdate{})
			Expect(err).To(MatchError(ContainSubstring("not found")))
		})
	})

	Describe("exports", func() {
		It("returns a blob with a suggested filename", func() {
			blob, filename, err := c.ExportReport(ctx, client.ExportPDF, client.ExportRequest{Tool: "flux"})
			Expect(err).To(Succeed())
			Expect(filename).To(Equal("flux_report.pdf"))
			Expect(string(blob)).To(HavePrefix("%PDF"))
		})

		It("rejects an unknown export kind", func() {
			_, _, err := c.ExportReport(ctx, client.ExportKind("docx"), client.ExportRequest{Tool: "flux"})
			Expect(err).To(MatchError(`unsupported export kind "docx"`))
		})
	})
})
