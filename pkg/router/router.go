package router

import (
	"github.com/gofiber/fiber/v2"
)

// Route 路由配置
type Route struct {
	Method      string          // HTTP方法
	Path        string          // 相对于前缀的路径
	Handler     fiber.Handler   // 处理函数
	Middlewares []fiber.Handler // 路由级中间件，按顺序执行
}

// Registrar 路由注册器接口
type Registrar interface {
	// Prefix 返回路由前缀
	Prefix() string
	// Routes 返回路由配置列表，接收共享中间件(如 "jwt")
	Routes(middlewares map[string]fiber.Handler) []Route
}

// Register 注册所有控制器路由，静态路径需排在参数路径之前
func Register(app fiber.Router, middlewares map[string]fiber.Handler, controllers ...Registrar) {
	for _, ctrl := range controllers {
		g := app.Group(ctrl.Prefix())
		for _, route := range ctrl.Routes(middlewares) {
			g.Add(route.Method, route.Path, handlers(route)...)
		}
	}
}

func handlers(route Route) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(route.Middlewares)+1)
	for _, h := range route.Middlewares {
		if h != nil {
			out = append(out, h)
		}
	}
	return append(out, route.Handler)
}
