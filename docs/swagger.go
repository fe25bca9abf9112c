package docs

// @title 旅行规划服务 API
// @version 1.0
// @description 基于社交媒体旅行内容的结构化分析、个性化推荐和逐日行程生成服务
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
