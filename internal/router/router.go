package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "patient-adherence/docs"
	mem "patient-adherence/internal/adapters/storage/memory"
	pg "patient-adherence/internal/adapters/storage/postgres"
	"patient-adherence/internal/domain/audit"
	"patient-adherence/internal/domain/doses"
	"patient-adherence/internal/domain/exams"
	"patient-adherence/internal/domain/medications"
	"patient-adherence/internal/domain/patients"
	"patient-adherence/internal/domain/reports"
	"patient-adherence/internal/middleware"
	"patient-adherence/internal/platform/clock"
	"patient-adherence/internal/platform/logger"
	"patient-adherence/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Clock   clock.Clock   // nil = hora del sistema
	Logger  logger.Logger // nil = descarta
	Swagger bool
}

// Services agrupa los servicios por módulo; main los usa también fuera de HTTP
// (scheduler, CLI).
type Services struct {
	Patients    *patients.Service
	Medications *medications.Service
	Doses       *doses.Service
	Exams       *exams.Service
	Audit       *audit.Service
	Reports     *reports.Service
}

func NewServices(opts Options) *Services {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	clk := clock.OrSystem(opts.Clock)

	var (
		patientRepo    patients.Repository
		medicationRepo medications.Repository
		doseRepo       doses.Repository
		examRepo       exams.Repository
		auditRepo      audit.Repository
	)

	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		medicationRepo = pg.NewMedicationsRepo(opts.DB)
		doseRepo = pg.NewDosesRepo(opts.DB)
		examRepo = pg.NewExamsRepo(opts.DB)
		auditRepo = pg.NewAuditRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		medicationRepo = mem.NewMedicationRepo()
		doseRepo = mem.NewDoseRepo()
		examRepo = mem.NewExamRepo()
		auditRepo = mem.NewAuditRepo()
	}

	auditSvc := audit.NewService(auditRepo, clk)
	dosesSvc := doses.NewService(doseRepo, auditSvc, clk, log)

	return &Services{
		Patients:    patients.NewService(patientRepo, clk),
		Medications: medications.NewService(medicationRepo, dosesSvc, clk, log),
		Doses:       dosesSvc,
		Exams:       exams.NewService(examRepo, auditSvc, clk, log),
		Audit:       auditSvc,
		Reports:     reports.NewService(dosesSvc, clk, log),
	}
}

func NewRouter(opts Options) http.Handler {
	return Mount(NewServices(opts), opts)
}

// Mount arma el router HTTP sobre servicios ya construidos.
func Mount(svcs *Services, opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.Route("/patients", func(pr chi.Router) {
		patients.RegisterRoutes(pr, svcs.Patients)

		// Todo lo que cuelga de un paciente exige ser su dueño
		pr.Route("/{patientID}", func(sr chi.Router) {
			sr.Use(middleware.RequireOwner(svcs.Patients))

			patients.RegisterProfileRoutes(sr, svcs.Patients)
			medications.RegisterRoutes(sr, svcs.Medications)
			doses.RegisterRoutes(sr, svcs.Doses)
			exams.RegisterRoutes(sr, svcs.Exams)
			reports.RegisterRoutes(sr, svcs.Reports)
			audit.RegisterRoutes(sr, svcs.Audit)
		})
	})

	return r
}
