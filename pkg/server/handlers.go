package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/translations"
)

// LocalesResponse is the body of GET /locales.
type LocalesResponse struct {
	Locale  string                          `json:"locale"`
	Locales []translations.LocaleDefinition `json:"locales"`
}

// NamespaceResponse is the body of the namespace endpoints.
type NamespaceResponse struct {
	Messages  map[string]string `json:"messages"`
	Locale    string            `json:"locale"`
	Namespace string            `json:"namespace"`
}

// TranslationResponse is the body of GET /t/{key}.
type TranslationResponse struct {
	Key    string `json:"key"`
	Locale string `json:"locale"`
	Value  string `json:"value"`
	Found  bool   `json:"found"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listLocales(w http.ResponseWriter, _ *http.Request) {
	resp := LocalesResponse{Locale: s.tr.Locale()}
	for _, locale := range s.tr.Locales() {
		if def, ok := s.tr.LocaleDefinition(locale); ok {
			resp.Locales = append(resp.Locales, def)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getNamespace(w http.ResponseWriter, r *http.Request) {
	def, ok := s.tr.LocaleDefinition(chi.URLParam(r, "locale"))
	if !ok {
		writeError(w, http.StatusNotFound, translations.ErrUnknownLocale)
		return
	}
	s.writeNamespace(w, r, def.Locale, chi.URLParam(r, "namespace"))
}

func (s *Server) getNegotiatedNamespace(w http.ResponseWriter, r *http.Request) {
	locale := s.negotiate(r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", locale)
	w.Header().Add("Vary", "Accept-Language")
	s.writeNamespace(w, r, locale, chi.URLParam(r, "namespace"))
}

func (s *Server) writeNamespace(w http.ResponseWriter, r *http.Request, locale, namespace string) {
	// A failed load is logged by the engine; data already stored is still served.
	s.tr.LoadNamespace(r.Context(), locale, namespace)

	snapshot, ok := s.tr.Snapshot(locale, namespace)
	if !ok {
		s.log.DebugContext(r.Context(), "namespace not found",
			slog.String("locale", locale),
			slog.String("namespace", namespace),
		)
		writeError(w, http.StatusNotFound, ErrNamespaceNotFound)
		return
	}

	messages := make(map[string]string, len(snapshot))
	for key, t := range snapshot {
		messages[key] = t.Render(nil)
	}
	writeJSON(w, http.StatusOK, NamespaceResponse{
		Locale:    locale,
		Namespace: namespace,
		Messages:  messages,
	})
}

// translate renders a key. The ns query parameter selects the namespace;
// every other query parameter is passed to function translations.
func (s *Server) translate(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		key = chi.URLParam(r, "*")
	}

	query := r.URL.Query()
	var opts []translations.TOption
	if ns := query.Get("ns"); ns != "" {
		opts = append(opts, translations.InNamespace(ns))
	}
	args := make(translations.Args, len(query))
	for name, values := range query {
		if name == "ns" || len(values) == 0 {
			continue
		}
		args[name] = values[0]
	}
	opts = append(opts, translations.WithArgs(args))

	value, found := s.tr.Lookup(key, opts...)
	writeJSON(w, http.StatusOK, TranslationResponse{
		Key:    key,
		Locale: s.tr.Locale(),
		Value:  value,
		Found:  found,
	})
}

// negotiate picks a registered locale for an Accept-Language header.
// Locale ids that are not BCP 47 tags never match. The active locale is
// used when nothing matches.
func (s *Server) negotiate(header string) string {
	active := s.tr.Locale()
	if header == "" {
		return active
	}

	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return active
	}

	candidates := []string{active}
	tags := []language.Tag{language.Und}
	if tag, err := language.Parse(strings.ReplaceAll(active, "_", "-")); err == nil {
		tags[0] = tag
	}
	for _, locale := range s.tr.Locales() {
		if locale == active {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
		if err != nil {
			continue
		}
		candidates = append(candidates, locale)
		tags = append(tags, tag)
	}

	_, idx, conf := language.NewMatcher(tags).Match(prefs...)
	if conf == language.No {
		return active
	}
	return candidates[idx]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
