package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// fakeGateway backend en memoria. calls cuenta toda llamada que habría salido a la red.
type fakeGateway struct {
	mu    sync.Mutex
	calls atomic.Int32

	docs      map[entity.DocumentKind][]entity.Document
	listErr   map[entity.DocumentKind]error
	companies []entity.Company
	decls     []entity.Declaration
	submitErr error

	lastDecl    entity.Declaration
	lastFees    []entity.FeeLine
	lastTaxes   []entity.TaxLine
	lastUpload  ports.FileUpload
	lastKind    entity.DocumentKind
	lastCompany entity.Company
}

var _ ports.BackendGateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{docs: map[entity.DocumentKind][]entity.Document{}, listErr: map[entity.DocumentKind]error{}}
}

func (g *fakeGateway) auth(token string) error {
	if token == "" {
		return domain.ErrMissingToken
	}
	g.calls.Add(1)
	return nil
}

func (g *fakeGateway) Login(context.Context, dto.LoginRequest) (*dto.LoginResponse, error) {
	g.calls.Add(1)
	return &dto.LoginResponse{Token: "tok"}, nil
}

func (g *fakeGateway) SubmitDeclaration(_ context.Context, token string, d entity.Declaration) (string, error) {
	if err := g.auth(token); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastDecl = d
	return "Declaration saved", g.submitErr
}

func (g *fakeGateway) ListDeclarations(_ context.Context, token string) ([]entity.Declaration, error) {
	if err := g.auth(token); err != nil {
		return nil, err
	}
	return g.decls, nil
}

func (g *fakeGateway) SubmitFees(_ context.Context, token, _ string, fees []entity.FeeLine) (string, error) {
	if err := g.auth(token); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastFees = fees
	return "", g.submitErr
}

func (g *fakeGateway) SubmitTaxes(_ context.Context, token, _ string, taxes []entity.TaxLine) (string, error) {
	if err := g.auth(token); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastTaxes = taxes
	return "", g.submitErr
}

func (g *fakeGateway) UploadDocument(_ context.Context, token string, kind entity.DocumentKind, _ string, file ports.FileUpload) (string, error) {
	if err := g.auth(token); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastKind, g.lastUpload = kind, file
	return "", g.submitErr
}

func (g *fakeGateway) ListDocuments(ctx context.Context, token string, kind entity.DocumentKind) ([]entity.Document, error) {
	if err := g.auth(token); err != nil {
		return nil, err
	}
	g.mu.Lock()
	err, docs := g.listErr[kind], g.docs[kind]
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return docs, nil
}

func (g *fakeGateway) ListAllDocuments(_ context.Context, token string) ([]entity.Document, error) {
	if err := g.auth(token); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	var all []entity.Document
	for _, k := range entity.Kinds {
		for _, d := range g.docs[k] {
			if d.Kind == "" {
				d.Kind = k
			}
			all = append(all, d)
		}
	}
	return all, nil
}

func (g *fakeGateway) RegisterCompany(_ context.Context, token string, c entity.Company) (string, error) {
	if err := g.auth(token); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastCompany = c
	return "Company registered", g.submitErr
}

func (g *fakeGateway) ListCompanies(_ context.Context, token string) ([]entity.Company, error) {
	if err := g.auth(token); err != nil {
		return nil, err
	}
	return g.companies, nil
}
