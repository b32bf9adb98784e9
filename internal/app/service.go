// Package app wires the generation pipeline, auxiliary flows, export,
// and persistence behind one service, and exposes it over HTTP.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"docai/api/internal/archive"
	"docai/api/internal/auth"
	"docai/api/internal/authpw"
	"docai/api/internal/config"
	"docai/api/internal/docgen"
	"docai/api/internal/export"
	"docai/api/internal/flows"
	"docai/api/internal/recents"
	"docai/api/internal/search"
	"docai/api/internal/storage"
	"docai/api/internal/store"
	"docai/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Email        string
	JTI          string
	ExpiresAt    time.Time
}

type dataStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (store.User, error)
	GetUserByEmail(ctx context.Context, email string) (store.User, error)
	GetUserByID(ctx context.Context, id string) (store.User, error)
	InsertGeneration(ctx context.Context, rec store.GenerationRecord) error
	GetGeneration(ctx context.Context, id string) (store.GenerationRecord, error)
	ListGenerations(ctx context.Context, userID string, limit int) ([]store.GenerationRecord, error)
	DeleteGeneration(ctx context.Context, userID, id string) error
	Ping(ctx context.Context) error
}

type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash string, user store.User, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

type generator interface {
	Generate(ctx context.Context, req docgen.GenerationRequest) (*docgen.DocumentResult, error)
}

type exporter interface {
	Export(ctx context.Context, req export.Request) (*export.Result, error)
}

type recentsStore interface {
	Add(ctx context.Context, userID string, item recents.Item) error
	List(ctx context.Context, userID string) ([]recents.Item, error)
	Clear(ctx context.Context, userID string) error
}

type documentStorage interface {
	Upload(ctx context.Context, ownerID, fileName string, data []byte, contentType string) (string, error)
	List(ctx context.Context, ownerID string) ([]storage.File, error)
}

type searcher interface {
	Search(q search.Query) search.Response
	IndexGeneration(rec search.GenerationRecord)
	DeleteGeneration(id string)
}

type archiveService interface {
	SaveRevision(documentID, markdown, author, message string) (archive.RevisionInfo, error)
	History(documentID string, limit int) ([]archive.RevisionInfo, error)
	Revision(documentID, hash string) (string, archive.RevisionInfo, error)
}

type Service struct {
	cfg      config.Config
	store    dataStore
	sessions sessionStore
	authpw   *authpw.Service
	pipeline generator
	flows    *flows.Service
	exporter exporter
	recents  recentsStore
	storage  documentStorage // nil when object storage is not configured
	search   searcher        // nil when search is not configured
	archive  archiveService
}

func New(
	cfg config.Config,
	data dataStore,
	sessions sessionStore,
	authSvc *authpw.Service,
	pipeline generator,
	flowSvc *flows.Service,
	exportSvc exporter,
	recentsStore recentsStore,
	docStorage documentStorage,
	searchSvc searcher,
	archiveSvc archiveService,
) *Service {
	return &Service{
		cfg:      cfg,
		store:    data,
		sessions: sessions,
		authpw:   authSvc,
		pipeline: pipeline,
		flows:    flowSvc,
		exporter: exportSvc,
		recents:  recentsStore,
		storage:  docStorage,
		search:   searchSvc,
		archive:  archiveSvc,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// --- Sessions ---

func (s *Service) SignUp(ctx context.Context, req authpw.SignUpRequest) (Session, error) {
	user, err := s.authpw.SignUp(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) SignIn(ctx context.Context, req authpw.SignInRequest) (Session, error) {
	user, err := s.authpw.SignIn(ctx, req)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	user, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, auth.ErrInvalidToken
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

func (s *Service) SessionFromToken(token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		UserID:    claims.Sub,
		UserName:  claims.Name,
		Email:     claims.Email,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:   user.ID,
		Name:  user.Name,
		Email: user.Email,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), user, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		UserName:     user.Name,
		Email:        user.Email,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

// --- Document generation ---

type GenerationResponse struct {
	ID     string                 `json:"id"`
	Result *docgen.DocumentResult `json:"result"`
}

func (s *Service) GenerateDocument(ctx context.Context, session Session, req docgen.GenerationRequest) (*GenerationResponse, error) {
	result, err := s.pipeline.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	id := util.NewID("gen")
	title := titleFromResult(result, req.Prompt)
	s.record(ctx, session, store.GenerationRecord{
		ID:           id,
		UserID:       session.UserID,
		Kind:         "document",
		Title:        title,
		Snippet:      snippetFromResult(result),
		DocumentType: string(req.DocumentType),
		Format:       string(req.Format),
		PageCount:    req.PageCount,
		NumImages:    req.NumImages,
		Request:      mustJSON(req),
	}, result)

	return &GenerationResponse{ID: id, Result: result}, nil
}

// record persists a completed generation to history, recents, and the
// search index. Failures here are logged by the callees and never fail
// the generation itself.
func (s *Service) record(ctx context.Context, session Session, rec store.GenerationRecord, data any) {
	_ = s.store.InsertGeneration(ctx, rec)

	if s.search != nil {
		s.search.IndexGeneration(search.GenerationRecord{
			ID:      rec.ID,
			UserID:  rec.UserID,
			Kind:    rec.Kind,
			Title:   rec.Title,
			Snippet: rec.Snippet,
		})
	}

	if s.recents != nil {
		item := recents.Item{
			ID:         rec.ID,
			Type:       rec.Kind,
			Title:      rec.Title,
			FormValues: rec.Request,
		}
		if data != nil {
			item.Data = mustJSON(data)
		}
		_ = s.recents.Add(ctx, session.UserID, item)
	}
}

// --- Auxiliary flows ---

func (s *Service) AnalyzeDocument(ctx context.Context, session Session, in flows.AnalyzeInput) (*flows.AnalyzeOutput, error) {
	out, err := s.flows.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "analyze",
		Title:   firstLine(in.UserQuestion),
		Snippet: out.Summary,
	}, out)
	return out, nil
}

func (s *Service) DraftResume(ctx context.Context, session Session, in flows.ResumeInput) (*flows.ResumeOutput, error) {
	out, err := s.flows.DraftResume(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "resume",
		Title:   "Resume draft",
		Snippet: truncate(out.ResumeMarkdown, 280),
		Request: mustJSON(in),
	}, out)
	return out, nil
}

func (s *Service) GenerateIllustration(ctx context.Context, session Session, in flows.IllustrationInput) (*flows.IllustrationOutput, error) {
	out, err := s.flows.GenerateIllustration(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "illustration",
		Title:   in.Title,
		Snippet: truncate(in.Description, 280),
		Request: mustJSON(in),
	}, out)
	return out, nil
}

func (s *Service) GenerateShortNotes(ctx context.Context, session Session, in flows.ShortNotesInput) (*flows.ShortNotesOutput, error) {
	out, err := s.flows.GenerateShortNotes(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "notes",
		Title:   "Short notes",
		Snippet: truncate(in.ChapterContent, 280),
	}, out)
	return out, nil
}

func (s *Service) SolveBooklet(ctx context.Context, session Session, in flows.BookletInput) (*flows.BookletOutput, error) {
	out, err := s.flows.SolveBooklet(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "booklet",
		Title:   "Solved booklet",
		Snippet: truncate(in.DocumentContent, 280),
	}, out)
	return out, nil
}

func (s *Service) GenerateExamPaper(ctx context.Context, session Session, in flows.ExamInput) (*flows.ExamOutput, error) {
	out, err := s.flows.GenerateExamPaper(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "exam",
		Title:   "Exam paper",
		Snippet: truncate(in.Syllabus, 280),
		Request: mustJSON(in),
	}, out)
	return out, nil
}

func (s *Service) ConvertToHandwriting(ctx context.Context, session Session, in flows.HandwritingInput) (*flows.HandwritingOutput, error) {
	out, err := s.flows.ConvertToHandwriting(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, session, store.GenerationRecord{
		ID:      util.NewID("gen"),
		UserID:  session.UserID,
		Kind:    "handwriting",
		Title:   "Handwritten conversion",
		Snippet: truncate(in.SourceText, 280),
	}, out)
	return out, nil
}

func (s *Service) Chat(ctx context.Context, in flows.AssistantInput) (*flows.AssistantOutput, error) {
	return s.flows.Chat(ctx, in)
}

// EditDocument runs the editor flow and archives the edited markdown
// as a new revision of the document.
func (s *Service) EditDocument(ctx context.Context, session Session, documentID string, in flows.EditorInput) (*flows.EditorOutput, error) {
	out, err := s.flows.EditDocument(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.archive != nil && documentID != "" {
		if _, err := s.archive.SaveRevision(documentID, out.EditedContent, session.UserName, "AI edit"); err != nil {
			return nil, fmt.Errorf("archive revision: %w", err)
		}
	}
	return out, nil
}

func (s *Service) EditorHistory(documentID string, limit int) ([]archive.RevisionInfo, error) {
	return s.archive.History(documentID, limit)
}

func (s *Service) EditorRevision(documentID, hash string) (string, archive.RevisionInfo, error) {
	return s.archive.Revision(documentID, hash)
}

// --- Export and stored documents ---

type ExportInput struct {
	Title    string                 `json:"title"`
	Result   *docgen.DocumentResult `json:"result"`
	Format   docgen.Format          `json:"format"`
	PageSize docgen.PageSize        `json:"pageSize"`
	Font     string                 `json:"font"`
	Save     bool                   `json:"save"`
}

type ExportOutput struct {
	Result *export.Result
	// URL is set when the export was also saved to object storage.
	URL string
}

func (s *Service) Export(ctx context.Context, session Session, in ExportInput) (*ExportOutput, error) {
	if in.Result == nil {
		return nil, domainError(422, "VALIDATION_ERROR", "result is required", nil)
	}

	res, err := s.exporter.Export(ctx, export.Request{
		Title:    in.Title,
		Result:   in.Result,
		Format:   in.Format,
		PageSize: in.PageSize,
		Font:     in.Font,
	})
	if err != nil {
		return nil, err
	}

	out := &ExportOutput{Result: res}
	if in.Save && s.storage != nil {
		url, err := s.storage.Upload(ctx, session.UserID, res.Filename, res.Data, res.MimeType)
		if err != nil {
			return nil, fmt.Errorf("store document: %w", err)
		}
		out.URL = url
	}
	return out, nil
}

func (s *Service) ListStoredDocuments(ctx context.Context, session Session) ([]storage.File, error) {
	if s.storage == nil {
		return []storage.File{}, nil
	}
	return s.storage.List(ctx, session.UserID)
}

// --- History, recents, search ---

func (s *Service) ListHistory(ctx context.Context, session Session, limit int) ([]store.GenerationRecord, error) {
	return s.store.ListGenerations(ctx, session.UserID, limit)
}

func (s *Service) GetHistoryEntry(ctx context.Context, session Session, id string) (store.GenerationRecord, error) {
	rec, err := s.store.GetGeneration(ctx, id)
	if err != nil {
		return store.GenerationRecord{}, err
	}
	if rec.UserID != session.UserID {
		return store.GenerationRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (s *Service) DeleteHistoryEntry(ctx context.Context, session Session, id string) error {
	if err := s.store.DeleteGeneration(ctx, session.UserID, id); err != nil {
		return err
	}
	if s.search != nil {
		s.search.DeleteGeneration(id)
	}
	return nil
}

func (s *Service) ListRecents(ctx context.Context, session Session) ([]recents.Item, error) {
	if s.recents == nil {
		return []recents.Item{}, nil
	}
	return s.recents.List(ctx, session.UserID)
}

func (s *Service) ClearRecents(ctx context.Context, session Session) error {
	if s.recents == nil {
		return nil
	}
	return s.recents.Clear(ctx, session.UserID)
}

func (s *Service) Search(session Session, text, kind string, limit, offset int) search.Response {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: text}
	}
	return s.search.Search(search.Query{
		Text:       text,
		UserID:     session.UserID,
		FilterKind: kind,
		Limit:      limit,
		Offset:     offset,
	})
}

// --- helpers ---

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// titleFromResult takes the first markdown heading, falling back to
// the prompt.
func titleFromResult(result *docgen.DocumentResult, prompt string) string {
	for _, page := range result.Pages {
		for _, line := range strings.Split(page.MarkdownContent, "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "#") {
				title := strings.TrimSpace(strings.TrimLeft(line, "#"))
				if title != "" {
					return title
				}
			}
		}
	}
	return truncate(prompt, 80)
}

func snippetFromResult(result *docgen.DocumentResult) string {
	for _, page := range result.Pages {
		for _, line := range strings.Split(page.MarkdownContent, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
				continue
			}
			return truncate(line, 280)
		}
	}
	return ""
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return truncate(strings.TrimSpace(text), 80)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
