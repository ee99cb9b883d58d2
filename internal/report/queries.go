package report

// The statements stick to SQL understood by postgres, mysql and sqlite alike.

const summarySQL = `
SELECT
    (SELECT COUNT(*) FROM farms) AS total_farms,
    (SELECT COUNT(*) FROM varieties) AS total_varieties,
    (SELECT COUNT(*) FROM sensors) AS total_sensors,
    (SELECT COALESCE(SUM(production_tons), 0) FROM farm_crops) AS total_production,
    (SELECT COUNT(*) FROM farm_crops WHERE is_organic = 'Yes') AS organic_crops`

const productionByRegionSQL = `
SELECT f.region,
       COUNT(DISTINCT f.farm_id) AS farm_count,
       SUM(fc.production_tons) AS total_production
FROM farms f
JOIN farm_crops fc ON fc.farm_id = f.farm_id
GROUP BY f.region
ORDER BY total_production DESC, f.region`

const varietyStatsSQL = `
SELECT ct.crop_type_name,
       COUNT(v.variety_id) AS variety_count,
       ROUND(COUNT(v.variety_id) * 100.0 / NULLIF((SELECT COUNT(*) FROM varieties), 0), 2) AS percentage
FROM crop_types ct
LEFT JOIN varieties v ON v.crop_type_id = ct.crop_type_id
GROUP BY ct.crop_type_id, ct.crop_type_name
ORDER BY variety_count DESC, ct.crop_type_name`

const varietyProductionSQL = `
SELECT v.variety_name,
       ct.crop_type_name,
       COUNT(fc.farm_crop_id) AS farms_using,
       COALESCE(SUM(fc.production_tons), 0) AS total_production,
       COALESCE(AVG(fc.production_tons), 0) AS avg_production,
       COALESCE(MAX(fc.production_tons), 0) AS max_production
FROM varieties v
JOIN crop_types ct ON ct.crop_type_id = v.crop_type_id
LEFT JOIN farm_crops fc ON fc.variety_id = v.variety_id
GROUP BY v.variety_id, v.variety_name, ct.crop_type_name
ORDER BY total_production DESC, v.variety_name`

const underutilizedVarietiesSQL = `
SELECT v.variety_name,
       ct.crop_type_name,
       COUNT(fc.farm_crop_id) AS farms_using,
       COALESCE(SUM(fc.production_tons), 0) AS total_production
FROM varieties v
JOIN crop_types ct ON ct.crop_type_id = v.crop_type_id
LEFT JOIN farm_crops fc ON fc.variety_id = v.variety_id
GROUP BY v.variety_id, v.variety_name, ct.crop_type_name
HAVING COUNT(fc.farm_crop_id) <= 1
ORDER BY farms_using, ct.crop_type_name, v.variety_name`

const regionDiversitySQL = `
SELECT f.region,
       COUNT(DISTINCT fc.variety_id) AS unique_varieties,
       COUNT(DISTINCT fc.crop_type_id) AS crop_types,
       SUM(fc.production_tons) AS total_production
FROM farms f
JOIN farm_crops fc ON fc.farm_id = f.farm_id
GROUP BY f.region
ORDER BY unique_varieties DESC, f.region`
