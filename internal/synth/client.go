package synth

import (
	"strings"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/logger"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/utils"
)

// ClassName derives the client service class name from a controller name
func ClassName(controller, suffix string) string {
	if strings.Contains(controller, "Controller") {
		return strings.Replace(controller, "Controller", suffix, 1)
	}
	return controller + suffix
}

// FileName derives the generated file name from the service class name
func FileName(className, suffix string) string {
	return utils.KebabCase(className) + suffix + ".ts"
}

// BuildClient synthesizes the client file for one controller.
// Imports are left to the linker.
func BuildClient(cfg *config.Config, c *model.Controller) (*model.ClientFile, error) {
	baseURL, err := ControllerBaseURL(cfg.APIBase, c)
	if err != nil {
		return nil, err
	}

	className := ClassName(c.Name, cfg.Naming.ClassSuffix)
	file := &model.ClientFile{
		Controller: c.Name,
		Source:     c.File,
		ClassName:  className,
		FileName:   FileName(className, cfg.Naming.FileSuffix),
		ProvidedIn: cfg.ProvidedIn,
	}

	s := New(cfg)
	for i := range c.Methods {
		m := &c.Methods[i]

		body, reason, err := s.BuildBody(c.Name, baseURL, m)
		if err != nil {
			return nil, err
		}
		if reason != SkipNone {
			logger.Skip(c.Name, m.Name, string(reason))
			file.Skipped = append(file.Skipped, model.SkippedMethod{Name: m.Name, Reason: string(reason)})
			continue
		}

		file.Methods = append(file.Methods, s.clientMethod(m, body))
		logger.Debug("%s.%s -> %s %s", c.Name, m.Name, body.Route.Verb, body.Route.Path)
	}

	return file, nil
}

// clientMethod assembles the generated method from its synthesized body
func (s *Synthesizer) clientMethod(m *model.Method, body *Body) model.ClientMethod {
	cm := model.ClientMethod{
		Name:         m.Name,
		ResponseType: body.ResponseType,
		Statements:   body.Statements,
		Route: model.RouteInfo{
			Verb:       string(body.Route.Verb),
			Path:       body.Route.Path,
			PathParams: body.PathParams,
			QueryKeys:  body.QueryKeys,
			BodyParam:  body.BodyParam,
		},
	}

	for _, p := range body.Params {
		cm.Params = append(cm.Params, p.ClientParam())
	}

	for _, o := range m.Overloads {
		sig := model.ClientSignature{ResponseType: ResponseType(o.ReturnType)}
		for _, p := range s.FilterParams(o.Params) {
			sig.Params = append(sig.Params, p.ClientParam())
		}
		cm.Overloads = append(cm.Overloads, sig)
	}

	return cm
}
