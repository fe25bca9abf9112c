package models

// 支持的内容平台
const (
	PlatformXiaohongshu = "XIAOHONGSHU"
	PlatformBilibili    = "BILIBILI"
	PlatformDouyin      = "DOUYIN"
	PlatformMafengwo    = "MAFENGWO"
)

// 地点类型
const (
	LocationTypeAttraction = "ATTRACTION"
	LocationTypeRestaurant = "RESTAURANT"
	LocationTypeHotel      = "HOTEL"
	LocationTypeTransport  = "TRANSPORT"
	LocationTypeActivity   = "ACTIVITY"
)

// 媒体类型
const (
	MediaTypeImage = "IMAGE"
	MediaTypeVideo = "VIDEO"
)

// SupportedPlatforms 所有支持的平台列表
var SupportedPlatforms = []string{
	PlatformXiaohongshu,
	PlatformBilibili,
	PlatformDouyin,
	PlatformMafengwo,
}

// Coordinates WGS84经纬度坐标
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location 帖子中提取出的地点信息
type Location struct {
	Name        string       `json:"name"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Type        string       `json:"type"`
}

// Activity 帖子中提取出的活动信息
type Activity struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"` // 预估费用（计划货币），非负
	Duration      *int     `json:"duration,omitempty"`      // 时长（分钟），正数
	Tips          []string `json:"tips,omitempty"`
}

// MediaItem 帖子中的媒体内容
type MediaItem struct {
	Type      string `json:"type"` // IMAGE / VIDEO
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Author 帖子作者信息
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Stats 帖子互动数据
type Stats struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// Post 一条已提取的社交媒体旅行内容，提取后不可变
type Post struct {
	ContentID   string      `json:"contentId,omitempty"` // 为空时由url+title的MD5生成
	URL         string      `json:"url,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Platform    string      `json:"platform"`
	Locations   []Location  `json:"locations,omitempty"`
	Activities  []Activity  `json:"activities,omitempty"`
	Media       []MediaItem `json:"media,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Author      Author      `json:"author"`
	Stats       Stats       `json:"stats"`
}
